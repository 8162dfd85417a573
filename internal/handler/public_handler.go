package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/traveljournal/internal/service"
	"github.com/traveljournal/internal/view"
)

// ShowHome renders the listing of the most recent trips. A failed fetch
// renders the empty state.
func (a *API) ShowHome(c *gin.Context) {
	pref := a.requestLocale(c)

	posts, err := a.posts.ListRecent(c.Request.Context())
	if err != nil {
		c.Error(err) // 不中断渲染，但记录错误
	}

	a.renderHTML(c, http.StatusOK, "home.html", view.PageMeta{}, gin.H{
		"posts": view.NewPostCards(posts, pref.Language, a.location),
	})
}

// ShowPostDetail renders a single trip by slug, or the not-found page.
func (a *API) ShowPostDetail(c *gin.Context) {
	pref := a.requestLocale(c)
	slug := c.Param("slug")
	ctx := c.Request.Context()

	meta := a.posts.Metadata(ctx, slug)

	post, err := a.posts.GetBySlug(ctx, slug)
	if err != nil {
		var fetchErr *service.FetchError
		if errors.As(err, &fetchErr) {
			c.Error(err)
		}
		a.renderHTML(c, http.StatusNotFound, "not_found.html", meta, nil)
		return
	}

	a.renderHTML(c, http.StatusOK, "post_detail.html", meta, gin.H{
		"post": view.NewPostDetail(post, pref.Language, a.location),
	})
}

// NotFound renders the not-found page for unknown routes.
func (a *API) NotFound(c *gin.Context) {
	title := uiText(a.requestLocale(c).Language)["notFound"]
	a.renderHTML(c, http.StatusNotFound, "not_found.html", view.PageMeta{Title: title}, nil)
}

// Ping is the health check.
func (a *API) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
