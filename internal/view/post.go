package view

import (
	"net/url"
	"time"

	"github.com/samber/lo"
	"github.com/traveljournal/internal/db"
)

// PostCard is one entry of the listing grid.
type PostCard struct {
	ID            uint
	Title         string
	Href          string
	CoverImageURL string
	Excerpt       string
	Meta          string
}

// PostDetail is the view model of a single post page.
type PostDetail struct {
	Title         string
	Content       string
	CoverImageURL string
	Meta          string
}

// PostHref is the detail path for slug.
func PostHref(slug string) string {
	return "/posts/" + url.PathEscape(slug)
}

// NewPostCards maps listing rows to cards.
func NewPostCards(posts []db.PostSummary, language string, loc *time.Location) []PostCard {
	return lo.Map(posts, func(post db.PostSummary, _ int) PostCard {
		return PostCard{
			ID:            post.ID,
			Title:         post.Title,
			Href:          PostHref(post.Slug),
			CoverImageURL: lo.FromPtr(post.CoverImageURL),
			Excerpt:       lo.FromPtr(post.Excerpt),
			Meta:          JoinMeta(lo.FromPtr(post.Location), FormatTime(post.PublishedAt, language, loc)),
		}
	})
}

// NewPostDetail maps a full post to its page view model. Content is kept verbatim.
func NewPostDetail(post *db.Post, language string, loc *time.Location) PostDetail {
	return PostDetail{
		Title:         post.Title,
		Content:       post.Content,
		CoverImageURL: lo.FromPtr(post.CoverImageURL),
		Meta:          JoinMeta(lo.FromPtr(post.Location), FormatTime(post.PublishedAt, language, loc)),
	}
}
