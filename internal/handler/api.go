package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/traveljournal/internal/service"
	"github.com/traveljournal/internal/view"
)

// Site holds the site-wide values shared by every page.
type Site struct {
	Name        string
	Description string
	BaseURL     string
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	posts    *service.PostService
	site     Site
	location *time.Location
	now      func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(posts *service.PostService, site Site, location *time.Location) *API {
	if strings.TrimSpace(site.Name) == "" {
		site.Name = "Travel Journal"
	}
	if location == nil {
		location = time.UTC
	}
	return &API{
		posts:    posts,
		site:     site,
		location: location,
		now:      time.Now,
	}
}

// pageTitle applies the "%s · Site" template; an empty title is the site name.
func (a *API) pageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return a.site.Name
	}
	return fmt.Sprintf("%s · %s", title, a.site.Name)
}

func (a *API) absoluteURL(path string) string {
	if a.site.BaseURL == "" {
		return ""
	}
	return a.site.BaseURL + path
}

func (a *API) renderHTML(c *gin.Context, status int, template string, meta view.PageMeta, data gin.H) {
	pref := a.requestLocale(c)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	description := meta.Description
	if description == "" {
		description = a.site.Description
	}

	payload["title"] = a.pageTitle(meta.Title)
	payload["meta"] = gin.H{
		"title":       meta.Title,
		"description": description,
		"images":      meta.Images,
		"url":         a.absoluteURL(c.Request.URL.Path),
	}
	payload["site"] = gin.H{
		"name":        a.site.Name,
		"description": a.site.Description,
	}
	payload["lang"] = pref.HTMLLang
	payload["text"] = uiText(pref.Language)
	payload["year"] = a.now().In(a.location).Year()

	c.HTML(status, template, payload)
}
