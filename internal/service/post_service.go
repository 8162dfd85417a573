package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	log "github.com/sirupsen/logrus"
	"github.com/traveljournal/internal/db"
	"github.com/traveljournal/internal/view"
)

// DefaultListingLimit is the number of posts shown on the home page.
const DefaultListingLimit = 12

var ErrPostNotFound = errors.New("post not found")

// FetchError reports that the data service call itself failed.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PostSource is the read-only data access boundary.
// FindBySlug returns (nil, nil) when no post matches.
type PostSource interface {
	ListRecent(ctx context.Context, limit int) ([]db.PostSummary, error)
	FindBySlug(ctx context.Context, slug string) (*db.Post, error)
}

// PostService loads posts for the public pages.
type PostService struct {
	source PostSource
	limit  int
	plain  *bluemonday.Policy
}

// NewPostService creates a PostService. A non-positive limit uses DefaultListingLimit.
func NewPostService(source PostSource, limit int) *PostService {
	if limit <= 0 {
		limit = DefaultListingLimit
	}
	return &PostService{source: source, limit: limit, plain: bluemonday.StrictPolicy()}
}

// Limit is the maximum number of posts returned by ListRecent.
func (s *PostService) Limit() int {
	return s.limit
}

// ListRecent returns the newest posts. A failed fetch is logged and yields an
// empty list together with the FetchError, so callers may render the empty
// state and still record the failure.
func (s *PostService) ListRecent(ctx context.Context) ([]db.PostSummary, error) {
	posts, err := s.source.ListRecent(ctx, s.limit)
	if err != nil {
		fetchErr := &FetchError{Op: "list posts", Err: err}
		log.WithFields(log.Fields{"op": fetchErr.Op, "limit": s.limit}).WithError(err).Error("Error loading posts")
		return []db.PostSummary{}, fetchErr
	}
	if len(posts) > s.limit {
		posts = posts[:s.limit]
	}
	if posts == nil {
		posts = []db.PostSummary{}
	}
	return posts, nil
}

// GetBySlug returns the post for slug. A missing row and a failed fetch both
// yield ErrPostNotFound; the fetch failure is logged first.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*db.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrPostNotFound
	}

	post, err := s.source.FindBySlug(ctx, slug)
	if err != nil {
		fetchErr := &FetchError{Op: "find post", Err: err}
		log.WithFields(log.Fields{"op": fetchErr.Op, "slug": slug}).WithError(err).Error("Error fetching post")
		return nil, fmt.Errorf("%w: %w", ErrPostNotFound, fetchErr)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Metadata builds the page metadata for slug with its own fetch.
func (s *PostService) Metadata(ctx context.Context, slug string) view.PageMeta {
	post, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return view.PageMeta{Title: "Post not found"}
	}

	meta := view.PageMeta{
		Title:       post.Title,
		Description: s.plainText(post.Excerpt),
	}
	if post.CoverImageURL != nil && strings.TrimSpace(*post.CoverImageURL) != "" {
		meta.Images = []string{strings.TrimSpace(*post.CoverImageURL)}
	}
	return meta
}

func (s *PostService) plainText(value *string) string {
	if value == nil {
		return ""
	}
	stripped := html.UnescapeString(s.plain.Sanitize(*value))
	return strings.Join(strings.Fields(stripped), " ")
}
