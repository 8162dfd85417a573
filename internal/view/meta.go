package view

import (
	"strings"

	"github.com/samber/lo"
)

// MetaSeparator joins the location and date of a post.
const MetaSeparator = " • "

// JoinMeta joins the non-blank parts with MetaSeparator.
func JoinMeta(parts ...string) string {
	kept := lo.Filter(parts, func(part string, _ int) bool {
		return strings.TrimSpace(part) != ""
	})
	return strings.Join(kept, MetaSeparator)
}

// PageMeta carries the title, description and social preview of a page.
type PageMeta struct {
	Title       string
	Description string
	Images      []string
}
