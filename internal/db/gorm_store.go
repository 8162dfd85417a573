package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormPostStore reads posts through gorm. It backs the sqlite driver.
type GormPostStore struct {
	db *gorm.DB
}

// NewGormPostStore wraps an open gorm connection.
func NewGormPostStore(gdb *gorm.DB) *GormPostStore {
	return &GormPostStore{db: gdb}
}

// ListRecent returns up to limit post summaries, newest first.
func (s *GormPostStore) ListRecent(ctx context.Context, limit int) ([]PostSummary, error) {
	var posts []PostSummary
	err := s.db.WithContext(ctx).
		Model(&Post{}).
		Select(summaryColumns).
		Order(publishedOrder).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// FindBySlug returns the post with the given slug, or nil when there is none.
func (s *GormPostStore) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	var posts []Post
	err := s.db.WithContext(ctx).
		Select(detailColumns).
		Where("slug = ?", slug).
		Limit(1).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("find post %q: %w", slug, err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}
