package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/pokedex-service/internal/metrics"
)

func TestObservePage(t *testing.T) {
	m := metrics.New()
	m.ObservePage(false, nil)
	m.ObservePage(false, nil)
	m.ObservePage(true, nil)
	m.ObservePage(false, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PageLoads(metrics.ResultWindow)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PageLoads(metrics.ResultFallback)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PageLoads(metrics.ResultError)))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/7", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Requests(http.MethodGet, "/things/:id", http.StatusNoContent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests(http.MethodGet, "unmatched", http.StatusNotFound)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "pokedex_http_requests_total"))
}
