package router

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/traveljournal/internal/handler"
	"github.com/traveljournal/web"
)

// Options configures SetupRouter.
type Options struct {
	// Revalidate is how long a rendered page may be served from cache. Zero disables caching.
	Revalidate time.Duration
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())

	tmpl := template.Must(web.Templates(template.FuncMap{}))
	r.SetHTMLTemplate(tmpl)

	r.GET("/ping", api.Ping)

	pages := r.Group("")
	pages.Use(api.LocaleMiddleware())
	if opts.Revalidate > 0 {
		pages.Use(PageCache(cache.New(opts.Revalidate, 2*opts.Revalidate), opts.Revalidate))
	}
	{
		pages.GET("/", api.ShowHome)
		pages.GET("/posts/:slug", api.ShowPostDetail)
	}

	r.NoRoute(api.LocaleMiddleware(), api.NotFound)

	return r
}
