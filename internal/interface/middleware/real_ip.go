package middleware

import (
	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// RemoteIPHeaders are consulted, in order, when the peer is a trusted proxy.
var RemoteIPHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// TrustProxies limits forwarded-address headers to requests whose peer is in proxies
// (IPs or CIDRs). An empty list trusts no proxy, so the socket address is used.
func TrustProxies(engine *gin.Engine, proxies []string) error {
	engine.ForwardedByClientIP = true
	engine.RemoteIPHeaders = RemoteIPHeaders
	if len(proxies) == 0 {
		proxies = nil
	}
	return engine.SetTrustedProxies(proxies)
}

// RealIP sets the client IP into the Gin context (key: "real_ip").
// The address comes from c.ClientIP(), which honours RemoteIPHeaders only behind trusted proxies.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, c.ClientIP())
		c.Next()
	}
}

// ClientIP returns the address stored by RealIP, falling back to c.ClientIP().
func ClientIP(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}
