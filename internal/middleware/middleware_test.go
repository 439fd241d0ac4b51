package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"click-tracker/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAdminRouter(user, pass string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/admin", BasicAuth(user, pass, zap.NewNop().Sugar()))
	admin.GET("", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func doAdmin(r *gin.Engine, user, pass string, withAuth bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if withAuth {
		req.SetBasicAuth(user, pass)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBasicAuth(t *testing.T) {
	r := newAdminRouter("harold", "s3cret")

	w := doAdmin(r, "", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="Admin Panel"`, w.Header().Get("WWW-Authenticate"))

	assert.Equal(t, http.StatusUnauthorized, doAdmin(r, "harold", "wrong", true).Code)
	assert.Equal(t, http.StatusUnauthorized, doAdmin(r, "other", "s3cret", true).Code)

	w = doAdmin(r, "harold", "s3cret", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestBasicAuth_FailsClosedWithoutConfig(t *testing.T) {
	for _, tc := range []struct{ user, pass string }{{"", ""}, {"harold", ""}, {"", "s3cret"}} {
		r := newAdminRouter(tc.user, tc.pass)
		// 即使请求中的凭据与配置"相等"也必须拒绝
		w := doAdmin(r, tc.user, tc.pass, true)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestBasicAuth_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newAdminRouter("harold", string(hash))

	assert.Equal(t, http.StatusOK, doAdmin(r, "harold", "s3cret", true).Code)
	assert.Equal(t, http.StatusUnauthorized, doAdmin(r, "harold", string(hash), true).Code)
}

func TestRateLimit_Memory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Limit{Enabled: true, Requests: 1, Burst: 2, SkipPaths: []string{"/health"}}

	r := gin.New()
	r.Use(RateLimit(nil, cfg))
	r.GET("/redirect", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/redirect", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinZapRecovery(zap.NewNop(), true), GinZapLogger(zap.NewNop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
