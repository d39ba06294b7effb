package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/rituday/internal/interface/http"
	"github.com/oksasatya/rituday/internal/interface/middleware"
)

// AccountModule wires account handlers under /account.
// Credential endpoints are rate limited per IP when redis is configured.
// Allow, when set, exempts matching clients from those limits.
type AccountModule struct {
	Handler *handlers.AccountHandler
	Redis   *redis.Client
	Allow   middleware.AllowFunc
}

func NewAccountModule(h *handlers.AccountHandler, rdb *redis.Client, rateLimit, bypassPrivate bool) *AccountModule {
	if !rateLimit {
		rdb = nil
	}
	m := &AccountModule{Handler: h, Redis: rdb}
	if bypassPrivate {
		m.Allow = middleware.AllowPrivateIP()
	}
	return m
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), m.Allow)       // 10 req/min per IP
	recoverLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), m.Allow) // 5 req/min per IP and route
	checkLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIPAndPath(), m.Allow)

	account := rg.Group("/account")
	{
		account.POST("/login", loginLimiter, m.Handler.Login)
		account.GET("/check", checkLimiter, m.Handler.CheckToken)
		account.POST("/check", checkLimiter, m.Handler.CheckToken)
		account.POST("/check/id", checkLimiter, m.Handler.CheckID)
		account.POST("/check/email", checkLimiter, m.Handler.CheckEmail)
		account.POST("/create", recoverLimiter, m.Handler.CreateAccount)
		account.POST("/find/id", recoverLimiter, m.Handler.FindID)
		account.POST("/find/password", recoverLimiter, m.Handler.FindPassword)
		account.POST("/change/password", recoverLimiter, m.Handler.ChangePassword)
	}
}
