package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/middleware"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"github.com/loopline/backend/pkg/token"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newStoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Follow{}, &models.Story{}, &models.StoryView{}); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}
	return db
}

func TestGetUserStoriesFollowerGate(t *testing.T) {
	db := newStoryTestDB(t)

	author := &models.User{Name: "author", Email: "author@example.com", Password: "x"}
	follower := &models.User{Name: "follower", Email: "follower@example.com", Password: "x"}
	stranger := &models.User{Name: "stranger", Email: "stranger@example.com", Password: "x"}
	for _, u := range []*models.User{author, follower, stranger} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user %s: %v", u.Name, err)
		}
	}
	if err := db.Create(&models.Follow{FollowerID: follower.ID, FollowingID: author.ID}).Error; err != nil {
		t.Fatalf("seed follow: %v", err)
	}

	storyRepo := repositories.NewPostgresStoryRepository(db)
	if err := storyRepo.CreateStory(&models.Story{UserID: author.ID, Content: "hi"}); err != nil {
		t.Fatalf("seed story: %v", err)
	}

	handler := NewStoryHandler(
		storyRepo,
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresFollowRepository(db),
	)
	e := echo.New()

	request := func(viewerID uint) (int, []models.Story) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/users/:id/stories")
		c.SetParamNames("id")
		c.SetParamValues(strconv.FormatUint(uint64(author.ID), 10))
		c.Set(middleware.ContextKeyUser, &token.AccessClaims{UserID: viewerID, Role: models.RoleUser})

		err := handler.GetUserStories(c)
		if err != nil {
			if httpErr, ok := err.(*echo.HTTPError); ok {
				return httpErr.Code, nil
			}
			t.Fatalf("unexpected error type: %v", err)
		}

		var body struct {
			Stories []models.Story `json:"stories"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return rec.Code, body.Stories
	}

	tests := []struct {
		name       string
		viewerID   uint
		wantCode   int
		wantListed int
	}{
		{"author sees own stories", author.ID, http.StatusOK, 1},
		{"follower sees stories", follower.ID, http.StatusOK, 1},
		{"stranger is rejected", stranger.ID, http.StatusForbidden, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stories := request(tt.viewerID)
			if code != tt.wantCode {
				t.Errorf("status = %d, want %d", code, tt.wantCode)
			}
			if len(stories) != tt.wantListed {
				t.Errorf("stories listed = %d, want %d", len(stories), tt.wantListed)
			}
		})
	}
}
