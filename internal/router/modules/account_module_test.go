package modules

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rituday/internal/interface/middleware"
)

func clientAt(ip string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/account/login", nil)
	c.Set(middleware.CtxRealIPKey, ip)
	return c
}

func TestNewAccountModule_PrivateBypass(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()

	m := NewAccountModule(nil, rdb, true, true)
	require.NotNil(t, m.Allow)
	assert.Same(t, rdb, m.Redis)
	assert.True(t, m.Allow(clientAt("10.1.2.3")))
	assert.True(t, m.Allow(clientAt("127.0.0.1")))
	assert.False(t, m.Allow(clientAt("203.0.113.9")))

	m = NewAccountModule(nil, rdb, true, false)
	assert.Nil(t, m.Allow)

	m = NewAccountModule(nil, rdb, false, true)
	assert.Nil(t, m.Redis)
}
