package router

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/traveljournal/internal/handler"
)

const cacheStatusHeader = "X-Cache"

// headers that belong to a single response and are never replayed from cache.
var uncachedHeaders = map[string]struct{}{
	"Set-Cookie":     {},
	"X-Request-Id":   {},
	"X-Cache":        {},
	"Content-Length": {},
}

type cachedPage struct {
	status      int
	contentType string
	header      http.Header
	body        []byte
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache serves rendered GET pages from store for up to ttl. Only 200
// responses are stored.
func PageCache(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ttl <= 0 || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := pageCacheKey(c)
		if cached, ok := store.Get(key); ok {
			if page, ok := cached.(cachedPage); ok {
				for name, values := range page.header {
					c.Writer.Header()[name] = append([]string(nil), values...)
				}
				c.Header(cacheStatusHeader, "HIT")
				c.Data(page.status, page.contentType, page.body)
				c.Abort()
				return
			}
		}

		c.Header(cacheStatusHeader, "MISS")
		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		if recorder.Status() != http.StatusOK || c.IsAborted() {
			return
		}

		header := http.Header{}
		for name, values := range recorder.Header() {
			if _, skip := uncachedHeaders[http.CanonicalHeaderKey(name)]; skip {
				continue
			}
			if name == "Content-Type" {
				continue
			}
			header[name] = append([]string(nil), values...)
		}

		store.Set(key, cachedPage{
			status:      recorder.Status(),
			contentType: recorder.Header().Get("Content-Type"),
			header:      header,
			body:        bytes.Clone(recorder.body.Bytes()),
		}, ttl)
	}
}

func pageCacheKey(c *gin.Context) string {
	return c.Request.Method + " " + c.Request.URL.RequestURI() + " " + handler.RequestLanguage(c)
}
