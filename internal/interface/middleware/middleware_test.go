package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rituday/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/who", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"email":      c.GetString(CtxUserEmailKey),
			"name":       c.GetString(CtxUserNameKey),
			"ip":         ClientIP(c),
			"request_id": c.GetString(CtxRequestIDKey),
		})
	})
	return r
}

func do(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestBearerAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("testsecret", 0)
	good, err := jwt.Issue("a@x", "Alice")
	require.NoError(t, err)
	expired, err := helpers.NewJWTManager("testsecret", -time.Minute).Issue("a@x", "Alice")
	require.NoError(t, err)

	r := newEngine(RequestIDMiddleware(), BearerAuth(jwt))

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{name: "valid", header: "Bearer " + good, status: http.StatusOK},
		{name: "missing", header: "", status: http.StatusUnauthorized, message: "missing access token"},
		{name: "no prefix", header: good, status: http.StatusUnauthorized, message: "invalid access token"},
		{name: "garbage", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized, message: "invalid access token"},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized, message: "access token expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w, body := do(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "a@x", body["email"])
				assert.Equal(t, "Alice", body["name"])
				return
			}
			assert.Equal(t, "fail", body["result"])
			assert.Equal(t, tt.message, body["message"])
			assert.NotEmpty(t, body["request_id"])
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newEngine(RequestIDMiddleware())

	w, body := do(r, httptest.NewRequest(http.MethodGet, "/who", nil))
	id, _ := body["request_id"].(string)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Header().Get(HeaderRequestID))

	keep := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(HeaderRequestID, keep)
	_, body = do(r, req)
	assert.Equal(t, keep, body["request_id"])

	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	_, body = do(r, req)
	assert.NotEqual(t, "<script>", body["request_id"])
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		proxies []string
		headers map[string]string
		want    string
	}{
		{name: "untrusted peer ignores cloudflare", headers: map[string]string{"CF-Connecting-IP": "203.0.113.7"}, want: "192.0.2.1"},
		{name: "untrusted peer ignores forwarded", headers: map[string]string{"X-Forwarded-For": "198.51.100.1"}, want: "192.0.2.1"},
		{name: "trusted peer cloudflare", proxies: []string{"192.0.2.0/24"}, headers: map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, want: "203.0.113.7"},
		{name: "trusted peer forwarded", proxies: []string{"192.0.2.1"}, headers: map[string]string{"X-Forwarded-For": "198.51.100.1"}, want: "198.51.100.1"},
		{name: "trusted peer bad cloudflare falls through", proxies: []string{"192.0.2.1"}, headers: map[string]string{"CF-Connecting-IP": "nope", "X-Forwarded-For": "198.51.100.2"}, want: "198.51.100.2"},
		{name: "other proxy not trusted", proxies: []string{"10.0.0.0/8"}, headers: map[string]string{"X-Forwarded-For": "198.51.100.1"}, want: "192.0.2.1"},
		{name: "remote addr", want: "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(RealIP())
			require.NoError(t, TrustProxies(r, tt.proxies))

			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			_, body := do(r, req)
			assert.Equal(t, tt.want, body["ip"])
		})
	}
}

func TestTrustProxies_RejectsBadEntry(t *testing.T) {
	assert.Error(t, TrustProxies(gin.New(), []string{"not-a-cidr"}))
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := newEngine(RateLimit(nil, 1, time.Minute, KeyByIP(), nil))
	for i := 0; i < 3; i++ {
		w, _ := do(r, httptest.NewRequest(http.MethodGet, "/who", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitKeys(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/account/login", nil)
	c.Set(CtxRealIPKey, "203.0.113.7")

	assert.Equal(t, "rl:ip:203.0.113.7", KeyByIP()(c))
	assert.Equal(t, "rl:path:/account/login:ip:203.0.113.7", KeyByIPAndPath()(c))
	assert.Equal(t, "rl:user:anon:ip:203.0.113.7", KeyByUserEmail()(c))

	c.Set(CtxUserEmailKey, "a@x")
	assert.Equal(t, "rl:user:a@x", KeyByUserEmail()(c))

	assert.False(t, AllowPrivateIP()(c))
	c.Set(CtxRealIPKey, "10.1.2.3")
	assert.True(t, AllowPrivateIP()(c))
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	r := newEngine(RequestIDMiddleware(), AccessLog(logger))
	do(r, httptest.NewRequest(http.MethodGet, "/who", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/who", entry["path"])
	assert.EqualValues(t, 200, entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestRateLimitHeaders(t *testing.T) {
	assert.Equal(t, 4, remaining(5, 1))
	assert.Equal(t, 0, remaining(5, 5))
	assert.Equal(t, 0, remaining(5, 9))

	assert.Equal(t, 60, windowSeconds(59_001))
	assert.Equal(t, 1, windowSeconds(1))
	assert.Equal(t, 0, windowSeconds(-1))
	assert.Equal(t, 0, windowSeconds(0))
}
