package db

import (
	"context"
	"fmt"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pgxpool.Pool used by PgPostStore.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgPostStore reads posts from a hosted postgres database.
type PgPostStore struct {
	q Querier
}

// NewPgPostStore wraps a pgx pool (or any Querier).
func NewPgPostStore(q Querier) *PgPostStore {
	return &PgPostStore{q: q}
}

func listRecentQuery(limit int) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(summaryColumns...).From("posts")
	sb.OrderBy(publishedOrder)
	sb.Limit(limit)
	return sb.Build()
}

func findBySlugQuery(slug string) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(detailColumns...).From("posts")
	sb.Where(sb.Equal("slug", slug))
	sb.Limit(1)
	return sb.Build()
}

// ListRecent returns up to limit post summaries, newest first.
func (s *PgPostStore) ListRecent(ctx context.Context, limit int) ([]PostSummary, error) {
	sql, args := listRecentQuery(limit)

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]PostSummary, 0, limit)
	for rows.Next() {
		var (
			post PostSummary
			id   int64
		)
		if err := rows.Scan(&id, &post.Title, &post.Slug, &post.Excerpt, &post.CoverImageURL, &post.Location, &post.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		post.ID = uint(id)
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// FindBySlug returns the post with the given slug, or nil when there is none.
func (s *PgPostStore) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	sql, args := findBySlugQuery(slug)

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find post %q: %w", slug, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("find post %q: %w", slug, err)
		}
		return nil, nil
	}

	var (
		post Post
		id   int64
	)
	if err := rows.Scan(&id, &post.Title, &post.Slug, &post.Excerpt, &post.Content, &post.CoverImageURL, &post.Location, &post.PublishedAt); err != nil {
		return nil, fmt.Errorf("scan post %q: %w", slug, err)
	}
	post.ID = uint(id)
	return &post, nil
}
