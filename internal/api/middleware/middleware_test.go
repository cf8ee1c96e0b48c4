package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sattvic-kitchen/internal/pkg/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }
	r.GET("/ping", ok)
	r.POST("/echo", ok)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Refill(t *testing.T) {
	now := time.Unix(0, 0)
	rl := newRateLimiter(2, time.Second, func() time.Time { return now })

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	now = now.Add(500 * time.Millisecond)
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	now = now.Add(10 * time.Second)
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}

func TestRateLimit_Middleware(t *testing.T) {
	r := newEngine(RateLimit(1, time.Minute))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", "").Code)
	w := serve(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"code":"TOO_MANY_REQUESTS"`)
}

func TestDeduplication(t *testing.T) {
	r := newEngine(Deduplication(time.Minute))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/echo", `{"a":1}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/echo", `{"a":1}`).Code)
	// 不同內容不受影響
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/echo", `{"a":2}`).Code)
	// GET 不去重
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", "").Code)
}

func TestDeduplication_WindowExpires(t *testing.T) {
	r := newEngine(Deduplication(5 * time.Millisecond))

	require.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/echo", `{}`).Code)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/echo", `{}`).Code)
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(8))

	w := serve(r, http.MethodPost, "/echo", `{"too":"large"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"BODY_TOO_LARGE"`)
	assert.Contains(t, w.Body.String(), "超過 8 bytes 上限")
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/echo", `{}`).Code)
}

func TestBodySizeLimit_UnknownLengthIsTruncated(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(8))
	r.POST("/bind", func(c *gin.Context) {
		var v map[string]interface{}
		if err := c.ShouldBindJSON(&v); err != nil {
			common.WriteError(c, common.BindError(err), false)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{"ingredients":["onion","garlic"]}`))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"BODY_TOO_LARGE"`)
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery(), Logger())

	w := serve(r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
}

func TestTimeout(t *testing.T) {
	r := newEngine(Timeout(10 * time.Millisecond))

	w := serve(r, http.MethodGet, "/slow", "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", "").Code)
}
