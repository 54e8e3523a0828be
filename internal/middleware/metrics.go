package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
	"github.com/noah-isme/contoso-university-api/pkg/response"
)

// RequestObserver records per-request metrics.
type RequestObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// StoreOutageObserver counts requests answered with STORAGE_UNAVAILABLE.
type StoreOutageObserver interface {
	RecordStoreUnavailable()
}

// Metrics returns middleware that captures request metrics using the provided observer.
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if observer == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))

		if code, _ := c.Get(response.ErrorCodeKey); code == appErrors.ErrStorageUnavailable.Code {
			if outages, ok := observer.(StoreOutageObserver); ok {
				outages.RecordStoreUnavailable()
			}
		}
	}
}
