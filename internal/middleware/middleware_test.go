package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contoso-university-api/internal/models"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
	"github.com/noah-isme/contoso-university-api/pkg/response"
)

type stubValidator struct {
	claims *models.JWTClaims
	err    error
}

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return s.claims, s.err
}

type recordingObserver struct {
	path    string
	status  int
	outages int
}

func (r *recordingObserver) RecordStoreUnavailable() {
	r.outages++
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.path, r.status = path, status
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.DELETE("/students/:id", handlers...)
	return r
}

func do(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/students/1", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAdminOnly(t *testing.T) {
	admin := stubValidator{claims: &models.JWTClaims{Role: models.RoleAdmin}}
	viewer := stubValidator{claims: &models.JWTClaims{Role: models.RoleViewer}}

	assert.Equal(t, http.StatusUnauthorized, do(newRouter(AdminOnly(true, admin)...), "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(newRouter(AdminOnly(true, admin)...), "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(newRouter(AdminOnly(true, admin)...), "Bearer bad").Code)
	assert.Equal(t, http.StatusForbidden, do(newRouter(AdminOnly(true, viewer)...), "Bearer good").Code)
	assert.Equal(t, http.StatusNoContent, do(newRouter(AdminOnly(true, admin)...), "bearer good").Code)
	assert.Equal(t, http.StatusNoContent, do(newRouter(AdminOnly(false, nil)...), "").Code)
}

func TestJWTPropagatesValidatorError(t *testing.T) {
	failing := stubValidator{err: errors.New("boom")}
	rec := do(newRouter(JWT(failing)), "Bearer good")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	obs := &recordingObserver{}
	rec := do(newRouter(Metrics(obs)), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/students/:id", obs.path)
	assert.Equal(t, http.StatusNoContent, obs.status)
}

func TestStoreTimeoutSetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var remaining time.Duration
	r.GET("/", StoreTimeout(2*time.Second), func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		if ok {
			remaining = time.Until(deadline)
		}
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Greater(t, remaining, time.Second)
	assert.LessOrEqual(t, remaining, 2*time.Second)
}

func TestMetricsCountsOnlyStorageUnavailableAnswers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/students", func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrStorageUnavailable, ""))
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
	})
	r.GET("/students/:id", func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "student not found"))
	})

	for _, path := range []string{"/ready", "/students/7"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}
	assert.Equal(t, 0, obs.outages)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 1, obs.outages)
}
