package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/rituday/internal/interface/http"
	"github.com/oksasatya/rituday/internal/interface/middleware"
	"github.com/oksasatya/rituday/pkg/helpers"
)

// RitualModule wires ritual handlers under /ritual.
// Public: list by month/day, show one, search
// Protected (bearer): enrollment, update, delete
type RitualModule struct {
	Handler *handlers.RitualHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewRitualModule(h *handlers.RitualHandler, jwt *helpers.JWTManager, rdb *redis.Client, rateLimit bool) *RitualModule {
	if !rateLimit {
		rdb = nil
	}
	return &RitualModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *RitualModule) Register(rg *gin.RouterGroup) {
	key := "/:" + handlers.ParamKey

	ritual := rg.Group("/ritual")
	{
		ritual.GET("/search", middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil), m.Handler.Search)
		ritual.GET(key+"/:month/list", m.Handler.ListByMonth)
		ritual.GET(key+"/:month/:day/list", m.Handler.ListByDay)
		ritual.GET(key, m.Handler.ShowOne)
	}

	auth := ritual.Group("/")
	auth.Use(
		middleware.BearerAuth(m.JWT),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserEmail(), nil),
	)
	{
		auth.POST("/enrollment", m.Handler.Enroll)
		auth.POST(key+"/update", m.Handler.Update)
		auth.POST(key+"/delete", m.Handler.Delete)
	}
}
