package db

import "time"

// Post is a journal entry with the full projection, including content.
type Post struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Slug          string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title         string     `gorm:"not null" json:"title"`
	Excerpt       *string    `json:"excerpt"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	CoverImageURL *string    `gorm:"column:cover_image_url" json:"cover_image_url"`
	Location      *string    `json:"location"`
	PublishedAt   *time.Time `gorm:"index" json:"published_at"`
}

// TableName 指定自定义表名，与托管数据库中的 posts 表保持一致。
func (Post) TableName() string {
	return "posts"
}

// PostSummary is the listing projection. It has no content field so that
// listings can never carry the body of a post.
type PostSummary struct {
	ID            uint       `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Excerpt       *string    `json:"excerpt"`
	CoverImageURL *string    `gorm:"column:cover_image_url" json:"cover_image_url"`
	Location      *string    `json:"location"`
	PublishedAt   *time.Time `json:"published_at"`
}

// TableName 指定自定义表名。
func (PostSummary) TableName() string {
	return "posts"
}

var (
	summaryColumns = []string{"id", "title", "slug", "excerpt", "cover_image_url", "location", "published_at"}
	detailColumns  = []string{"id", "title", "slug", "excerpt", "content", "cover_image_url", "location", "published_at"}
)

// publishedOrder sorts newest first; rows without a publish date go last.
const publishedOrder = "published_at DESC NULLS LAST, id DESC"
