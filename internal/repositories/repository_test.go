package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/loopline/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory store with foreign keys enforced, migrated to
// the full schema. One connection keeps the in-memory database alive for the
// whole test.
func newTestDB(t *testing.T) *gorm.DB {
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
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
		&models.CommentLike{},
		&models.Follow{},
		&models.Story{},
		&models.StoryView{},
		&models.Highlight{},
		&models.HighlightStory{},
		&models.Notification{},
		&models.Hashtag{},
		&models.PostHashtag{},
		&models.Report{},
		&models.Message{},
	); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return user
}

func seedPost(t *testing.T, db *gorm.DB, userID uint) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Content: "hello"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func TestToggleLikeRestoresPriorState(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID)
	repo := NewPostgresLikeRepository(db)

	added, err := repo.ToggleLike(post.ID, user.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !added {
		t.Error("first toggle = removed, want added")
	}
	if got := count(t, db, &models.Like{}); got != 1 {
		t.Errorf("likes after first toggle = %d, want 1", got)
	}

	added, err = repo.ToggleLike(post.ID, user.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if added {
		t.Error("second toggle = added, want removed")
	}
	if got := count(t, db, &models.Like{}); got != 0 {
		t.Errorf("likes after second toggle = %d, want 0", got)
	}

	// And back again: two sequential toggles restore the prior state.
	added, err = repo.ToggleLike(post.ID, user.ID)
	if err != nil {
		t.Fatalf("third toggle: %v", err)
	}
	if !added {
		t.Error("third toggle = removed, want added")
	}
}

func TestToggleBookmarkIndependentOfLike(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID)
	likes := NewPostgresLikeRepository(db)
	bookmarks := NewPostgresBookmarkRepository(db)

	if _, err := likes.ToggleLike(post.ID, user.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := bookmarks.ToggleBookmark(user.ID, post.ID); err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	if _, err := likes.ToggleLike(post.ID, user.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}

	saved, err := bookmarks.IsPostBookmarked(user.ID, post.ID)
	if err != nil {
		t.Fatalf("bookmark status: %v", err)
	}
	if !saved {
		t.Error("removing the like also removed the bookmark")
	}
}

func TestCreateFollowDuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	repo := NewPostgresFollowRepository(db)

	if err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate follow error = %v, want gorm.ErrDuplicatedKey", err)
	}

	// Unfollow is idempotent: deleting an absent edge succeeds.
	if err := repo.DeleteFollow(alice.ID, bob.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if err := repo.DeleteFollow(alice.ID, bob.ID); err != nil {
		t.Errorf("second unfollow: %v, want nil", err)
	}
}

func TestAddViewCountsEachViewerOnce(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	viewer := seedUser(t, db, "viewer")
	repo := NewPostgresStoryRepository(db)

	story := &models.Story{UserID: author.ID, Content: "hi"}
	if err := repo.CreateStory(story); err != nil {
		t.Fatalf("create story: %v", err)
	}

	viewed, err := repo.AddView(story.ID, viewer.ID)
	if err != nil {
		t.Fatalf("first view: %v", err)
	}
	if !viewed {
		t.Error("first view = false, want true")
	}

	viewed, err = repo.AddView(story.ID, viewer.ID)
	if err != nil {
		t.Fatalf("repeat view: %v", err)
	}
	if viewed {
		t.Error("repeat view = true, want false")
	}

	got, err := repo.GetStoryByID(story.ID)
	if err != nil {
		t.Fatalf("fetch story: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("views after repeat view = %d, want 1", got.Views)
	}

	if _, err := repo.AddView(story.ID, author.ID); err != nil {
		t.Fatalf("second viewer: %v", err)
	}
	got, _ = repo.GetStoryByID(story.ID)
	if got.Views != 2 {
		t.Errorf("views after second viewer = %d, want 2", got.Views)
	}
}

func TestDeleteExpiredSweepScope(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	repo := NewPostgresStoryRepository(db)

	expired := &models.Story{UserID: author.ID, Content: "old", ExpiresAt: time.Now().Add(-time.Hour)}
	alsoExpired := &models.Story{UserID: author.ID, Content: "older", ExpiresAt: time.Now().Add(-24 * time.Hour)}
	active := &models.Story{UserID: author.ID, Content: "new"}
	for _, s := range []*models.Story{expired, alsoExpired, active} {
		if err := repo.CreateStory(s); err != nil {
			t.Fatalf("create story: %v", err)
		}
	}

	deleted, err := repo.DeleteExpired()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if deleted != 2 {
		t.Errorf("first sweep deleted %d, want 2", deleted)
	}

	deleted, err = repo.DeleteExpired()
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second sweep deleted %d, want 0", deleted)
	}

	if _, err := repo.GetStoryByID(active.ID); err != nil {
		t.Errorf("active story gone after sweep: %v", err)
	}
	if _, err := repo.GetStoryByID(expired.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expired story fetch after sweep = %v, want record not found", err)
	}
}

func TestStoryExpiryFiltersFeedNotFetch(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	repo := NewPostgresStoryRepository(db)

	expired := &models.Story{UserID: author.ID, Content: "old", ExpiresAt: time.Now().Add(-time.Minute)}
	if err := repo.CreateStory(expired); err != nil {
		t.Fatalf("create story: %v", err)
	}

	stories, err := repo.GetActiveStoriesByUser(author.ID)
	if err != nil {
		t.Fatalf("active stories: %v", err)
	}
	if len(stories) != 0 {
		t.Errorf("expired story listed as active: %d stories", len(stories))
	}

	// Until the purge sweep runs, the row is still fetchable by id.
	if _, err := repo.GetStoryByID(expired.ID); err != nil {
		t.Errorf("expired story not fetchable before purge: %v", err)
	}
}

func TestCommentThreadOrdering(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID)
	repo := NewPostgresCommentRepository(db)

	mustComment := func(parent *uint, content string) *models.Comment {
		c := &models.Comment{PostID: post.ID, UserID: user.ID, ParentCommentID: parent, Content: content}
		if err := repo.CreateComment(c); err != nil {
			t.Fatalf("create comment %q: %v", content, err)
		}
		return c
	}

	// Interleaved creation: root A, root B, reply to A, reply to B, reply to A.
	rootA := mustComment(nil, "root a")
	rootB := mustComment(nil, "root b")
	replyA1 := mustComment(&rootA.ID, "reply a1")
	replyB1 := mustComment(&rootB.ID, "reply b1")
	replyA2 := mustComment(&rootA.ID, "reply a2")

	comments, err := repo.GetCommentsByPostID(post.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}

	want := []uint{rootA.ID, replyA1.ID, replyA2.ID, rootB.ID, replyB1.ID}
	if len(comments) != len(want) {
		t.Fatalf("got %d comments, want %d", len(comments), len(want))
	}
	for i, c := range comments {
		if c.ID != want[i] {
			t.Errorf("position %d: got comment %d, want %d", i, c.ID, want[i])
		}
	}
}

func TestCommentOrderingSurvivesRootDeletion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID)
	repo := NewPostgresCommentRepository(db)

	rootA := &models.Comment{PostID: post.ID, UserID: user.ID, Content: "root a"}
	if err := repo.CreateComment(rootA); err != nil {
		t.Fatalf("create root: %v", err)
	}
	reply := &models.Comment{PostID: post.ID, UserID: user.ID, ParentCommentID: &rootA.ID, Content: "reply"}
	if err := repo.CreateComment(reply); err != nil {
		t.Fatalf("create reply: %v", err)
	}
	rootB := &models.Comment{PostID: post.ID, UserID: user.ID, Content: "root b"}
	if err := repo.CreateComment(rootB); err != nil {
		t.Fatalf("create second root: %v", err)
	}

	if err := repo.DeleteComment(rootA.ID); err != nil {
		t.Fatalf("delete root: %v", err)
	}

	comments, err := repo.GetCommentsByPostID(post.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	// The orphaned reply keeps its parent pointer and still sorts in the
	// deleted root's slot, ahead of the later root.
	want := []uint{reply.ID, rootB.ID}
	if len(comments) != len(want) {
		t.Fatalf("got %d comments, want %d", len(comments), len(want))
	}
	for i, c := range comments {
		if c.ID != want[i] {
			t.Errorf("position %d: got comment %d, want %d", i, c.ID, want[i])
		}
	}
}

func TestUnlinkPostDecrementsUsage(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID)
	repo := NewPostgresHashtagRepository(db)

	tag, err := repo.GetOrCreate("golang")
	if err != nil {
		t.Fatalf("upsert tag: %v", err)
	}
	if err := repo.LinkPost(post.ID, tag.ID); err != nil {
		t.Fatalf("link: %v", err)
	}
	// A duplicate link moves nothing.
	if err := repo.LinkPost(post.ID, tag.ID); err != nil {
		t.Fatalf("duplicate link: %v", err)
	}

	got, _ := repo.GetByName("golang")
	if got.UsageCount != 1 {
		t.Errorf("usage after duplicate link = %d, want 1", got.UsageCount)
	}

	if err := repo.UnlinkPost(post.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	got, _ = repo.GetByName("golang")
	if got.UsageCount != 0 {
		t.Errorf("usage after unlink = %d, want 0", got.UsageCount)
	}
	if n := count(t, db, &models.PostHashtag{}); n != 0 {
		t.Errorf("link rows after unlink = %d, want 0", n)
	}

	// Unlinking a post with no links is a no-op, and the floor holds.
	if err := repo.UnlinkPost(post.ID); err != nil {
		t.Fatalf("second unlink: %v", err)
	}
	got, _ = repo.GetByName("golang")
	if got.UsageCount != 0 {
		t.Errorf("usage went negative: %d", got.UsageCount)
	}
}

func TestDeleteUserCascadesToOwnedRows(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	post := seedPost(t, db, alice.ID)
	if err := db.Create(&models.Comment{PostID: post.ID, UserID: bob.ID, Content: "hi"}).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	if err := db.Create(&models.Like{PostID: post.ID, UserID: bob.ID}).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}
	if err := db.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}).Error; err != nil {
		t.Fatalf("seed follow: %v", err)
	}
	story := &models.Story{UserID: alice.ID, Content: "s", ExpiresAt: time.Now().Add(time.Hour)}
	if err := db.Create(story).Error; err != nil {
		t.Fatalf("seed story: %v", err)
	}
	if err := db.Create(&models.StoryView{StoryID: story.ID, UserID: bob.ID, ViewedAt: time.Now()}).Error; err != nil {
		t.Fatalf("seed story view: %v", err)
	}
	if err := db.Create(&models.Message{SenderID: alice.ID, ReceiverID: bob.ID, Content: "hey"}).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}

	users := NewPostgresUserRepository(db)
	if err := users.DeleteUser(alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	for _, check := range []struct {
		name  string
		model interface{}
	}{
		{"posts", &models.Post{}},
		{"comments", &models.Comment{}},
		{"likes", &models.Like{}},
		{"follows", &models.Follow{}},
		{"stories", &models.Story{}},
		{"story views", &models.StoryView{}},
		{"messages", &models.Message{}},
	} {
		if n := count(t, db, check.model); n != 0 {
			t.Errorf("%s after owner deletion = %d, want 0", check.name, n)
		}
	}

	// Bob is untouched.
	if n := count(t, db, &models.User{}); n != 1 {
		t.Errorf("users remaining = %d, want 1", n)
	}
}

func TestDeletePostCascadesToEngagement(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID)

	comment := &models.Comment{PostID: post.ID, UserID: bob.ID, Content: "hi"}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	if err := db.Create(&models.CommentLike{CommentID: comment.ID, UserID: alice.ID}).Error; err != nil {
		t.Fatalf("seed comment like: %v", err)
	}
	if err := db.Create(&models.Bookmark{UserID: bob.ID, PostID: post.ID}).Error; err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}

	posts := NewPostgresPostRepository(db)
	if err := posts.DeletePost(post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	if n := count(t, db, &models.Comment{}); n != 0 {
		t.Errorf("comments after post deletion = %d, want 0", n)
	}
	if n := count(t, db, &models.CommentLike{}); n != 0 {
		t.Errorf("comment likes after post deletion = %d, want 0", n)
	}
	if n := count(t, db, &models.Bookmark{}); n != 0 {
		t.Errorf("bookmarks after post deletion = %d, want 0", n)
	}
}
