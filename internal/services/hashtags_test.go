package services

import (
	"reflect"
	"testing"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{"single tag", "hello #world", []string{"world"}},
		{"multiple tags", "#go and #postgres day", []string{"go", "postgres"}},
		{"lowercased", "loving #GoLang", []string{"golang"}},
		{"deduplicated", "#ski #SKI #Ski", []string{"ski"}},
		{"digits and underscore", "#web_3 launch", []string{"web_3"}},
		{"bare hash ignored", "just a # sign", nil},
		{"hash at end", "trailing #", nil},
		{"punctuation terminates", "wow #cool! right", []string{"cool"}},
		{"adjacent hashes", "##double", []string{"double"}},
		{"no tags", "plain text only", nil},
		{"empty content", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHashtags(tt.content)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractHashtags(%q) = %v, want %v", tt.content, got, tt.expected)
			}
		})
	}
}
