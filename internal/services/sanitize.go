package services

import "github.com/microcosm-cc/bluemonday"

// userTextPolicy strips all markup from user-supplied text before storage.
// Content in this system is plain text; anything HTML-shaped is hostile.
var userTextPolicy = bluemonday.StrictPolicy()

// SanitizeUserText strips HTML from user-supplied content.
func SanitizeUserText(content string) string {
	return userTextPolicy.Sanitize(content)
}
