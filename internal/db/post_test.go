package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&Post{}))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestGormPostStoreListRecentOrdersNewestFirst(t *testing.T) {
	gdb := setupStoreTestDB(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []Post{
		{Slug: "oldest", Title: "Oldest", Content: "a", PublishedAt: timePtr(base)},
		{Slug: "undated", Title: "Undated", Content: "b"},
		{Slug: "newest", Title: "Newest", Content: "c", PublishedAt: timePtr(base.AddDate(0, 2, 0))},
		{Slug: "middle", Title: "Middle", Content: "d", PublishedAt: timePtr(base.AddDate(0, 1, 0)), Location: strPtr("Lisbon")},
	}
	require.NoError(t, gdb.Create(&seed).Error)

	posts, err := NewGormPostStore(gdb).ListRecent(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, posts, 4)

	slugs := make([]string, 0, len(posts))
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"newest", "middle", "oldest", "undated"}, slugs)
	assert.Equal(t, "Lisbon", *posts[1].Location)
}

func TestGormPostStoreListRecentRespectsLimit(t *testing.T) {
	gdb := setupStoreTestDB(t)
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		post := Post{Slug: fmt.Sprintf("trip-%d", i), Title: fmt.Sprintf("Trip %d", i), Content: "x", PublishedAt: timePtr(base.AddDate(0, 0, i))}
		require.NoError(t, gdb.Create(&post).Error)
	}

	posts, err := NewGormPostStore(gdb).ListRecent(context.Background(), 12)
	require.NoError(t, err)
	assert.Len(t, posts, 12)
	assert.Equal(t, "trip-14", posts[0].Slug)
}

func TestGormPostStoreFindBySlug(t *testing.T) {
	gdb := setupStoreTestDB(t)
	post := Post{Slug: "paris-trip", Title: "Paris", Content: "Line1\nLine2", CoverImageURL: strPtr("https://img.example.com/paris.jpg")}
	require.NoError(t, gdb.Create(&post).Error)

	store := NewGormPostStore(gdb)

	found, err := store.FindBySlug(context.Background(), "paris-trip")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Paris", found.Title)
	assert.Equal(t, "Line1\nLine2", found.Content)
	assert.Equal(t, "https://img.example.com/paris.jpg", *found.CoverImageURL)
	assert.Nil(t, found.PublishedAt)

	missing, err := store.FindBySlug(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormPostStoreReportsQueryErrors(t *testing.T) {
	gdb := setupStoreTestDB(t)
	require.NoError(t, gdb.Migrator().DropTable(&Post{}))

	store := NewGormPostStore(gdb)
	_, err := store.ListRecent(context.Background(), 12)
	assert.Error(t, err)

	_, err = store.FindBySlug(context.Background(), "paris-trip")
	assert.Error(t, err)
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	path := t.TempDir() + "/nested/journal.db"
	gdb, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	assert.True(t, gdb.Migrator().HasTable(&Post{}))
}
