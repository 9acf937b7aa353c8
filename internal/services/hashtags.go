package services

import (
	"strings"
	"unicode"

	"github.com/loopline/backend/internal/repositories"
	"go.uber.org/zap"
)

// HashtagService extracts hashtags from post content and maintains the
// hashtag link table and usage counters.
type HashtagService struct {
	repo   repositories.HashtagRepository
	logger *zap.Logger
}

func NewHashtagService(repo repositories.HashtagRepository, logger *zap.Logger) *HashtagService {
	return &HashtagService{repo: repo, logger: logger}
}

// ExtractHashtags scans content for #word tokens and returns the lowercase
// names with the leading '#' stripped, deduplicated, in first-seen order.
func ExtractHashtags(content string) []string {
	var tags []string
	seen := make(map[string]bool)

	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '#' {
			continue
		}
		j := i + 1
		for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
			j++
		}
		if j > i+1 {
			name := strings.ToLower(string(runes[i+1 : j]))
			if !seen[name] {
				seen[name] = true
				tags = append(tags, name)
			}
		}
		i = j - 1
	}
	return tags
}

// LinkPostHashtags extracts and links all hashtags in content to the post.
// Linking is best-effort per tag; a failed tag is logged and skipped so one
// bad tag cannot fail post creation.
func (s *HashtagService) LinkPostHashtags(postID uint, content string) {
	for _, name := range ExtractHashtags(content) {
		tag, err := s.repo.GetOrCreate(name)
		if err != nil {
			s.logger.Warn("hashtag upsert failed", zap.String("name", name), zap.Error(err))
			continue
		}
		if err := s.repo.LinkPost(postID, tag.ID); err != nil {
			s.logger.Warn("hashtag link failed",
				zap.Uint("post_id", postID), zap.String("name", name), zap.Error(err))
		}
	}
}

// UnlinkPostHashtags removes a deleted post's hashtag links and decrements
// usage counters.
func (s *HashtagService) UnlinkPostHashtags(postID uint) {
	if err := s.repo.UnlinkPost(postID); err != nil {
		s.logger.Warn("hashtag unlink failed", zap.Uint("post_id", postID), zap.Error(err))
	}
}
