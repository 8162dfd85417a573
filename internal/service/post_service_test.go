package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traveljournal/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubSource struct {
	summaries []db.PostSummary
	posts     map[string]*db.Post
	err       error
	lastLimit int
	calls     int
}

func (s *stubSource) ListRecent(_ context.Context, limit int) ([]db.PostSummary, error) {
	s.calls++
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.summaries, nil
}

func (s *stubSource) FindBySlug(_ context.Context, slug string) (*db.Post, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.posts[slug], nil
}

func setupPostServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&db.Post{}))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func ptr[T any](v T) *T { return &v }

func TestListRecentTruncatesToLimit(t *testing.T) {
	summaries := make([]db.PostSummary, 20)
	for i := range summaries {
		summaries[i] = db.PostSummary{ID: uint(i + 1), Slug: fmt.Sprintf("trip-%d", i)}
	}
	source := &stubSource{summaries: summaries}

	svc := NewPostService(source, 0)
	posts, err := svc.ListRecent(context.Background())
	require.NoError(t, err)

	assert.Len(t, posts, DefaultListingLimit)
	assert.Equal(t, DefaultListingLimit, source.lastLimit)
}

func TestListRecentDegradesOnFetchError(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	svc := NewPostService(&stubSource{err: errors.New("connection refused")}, 12)
	posts, err := svc.ListRecent(context.Background())

	require.NotNil(t, posts)
	assert.Empty(t, posts)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "list posts", fetchErr.Op)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "list posts", hook.LastEntry().Data["op"])
}

func TestListRecentEmptySource(t *testing.T) {
	posts, err := NewPostService(&stubSource{}, 12).ListRecent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestListRecentOrderIsNonIncreasing(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	base := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	offsets := []int{5, 1, 30, 12, 12, 7, 0, 21, 3, 9, 14, 2, 18, 25}
	for i, days := range offsets {
		post := db.Post{Slug: fmt.Sprintf("trip-%d", i), Title: "Trip", Content: "x", PublishedAt: ptr(base.AddDate(0, 0, days))}
		require.NoError(t, gdb.Create(&post).Error)
	}

	posts, err := NewPostService(db.NewGormPostStore(gdb), 12).ListRecent(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 12)

	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].PublishedAt.After(*posts[i-1].PublishedAt), "post %d is newer than post %d", i, i-1)
	}
}

func TestGetBySlug(t *testing.T) {
	source := &stubSource{posts: map[string]*db.Post{
		"paris-trip": {ID: 1, Slug: "paris-trip", Title: "Paris", Content: "Line1\nLine2"},
	}}
	svc := NewPostService(source, 12)

	post, err := svc.GetBySlug(context.Background(), "paris-trip")
	require.NoError(t, err)
	assert.Equal(t, "Line1\nLine2", post.Content)

	_, err = svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)

	calls := source.calls
	_, err = svc.GetBySlug(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Equal(t, calls, source.calls)
}

func TestGetBySlugDowngradesFetchError(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	svc := NewPostService(&stubSource{err: errors.New("timeout")}, 12)
	_, err := svc.GetBySlug(context.Background(), "paris-trip")

	assert.ErrorIs(t, err, ErrPostNotFound)
	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "paris-trip", hook.LastEntry().Data["slug"])
}

func TestMetadata(t *testing.T) {
	source := &stubSource{posts: map[string]*db.Post{
		"paris-trip": {
			Slug:          "paris-trip",
			Title:         "Paris",
			Excerpt:       ptr("<b>Croissants</b> &amp; museums"),
			CoverImageURL: ptr("https://img.example.com/paris.jpg"),
		},
		"bare": {Slug: "bare", Title: "Bare"},
	}}
	svc := NewPostService(source, 12)

	meta := svc.Metadata(context.Background(), "paris-trip")
	assert.Equal(t, "Paris", meta.Title)
	assert.Equal(t, "Croissants & museums", meta.Description)
	assert.Equal(t, []string{"https://img.example.com/paris.jpg"}, meta.Images)

	bare := svc.Metadata(context.Background(), "bare")
	assert.Equal(t, "Bare", bare.Title)
	assert.Empty(t, bare.Description)
	assert.Nil(t, bare.Images)

	missing := svc.Metadata(context.Background(), "missing")
	assert.Equal(t, "Post not found", missing.Title)
}
