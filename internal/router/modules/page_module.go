package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/rituday/internal/interface/http"
)

type PageModule struct {
	Handler *handlers.PageHandler
}

func NewPageModule(h *handlers.PageHandler) *PageModule { return &PageModule{Handler: h} }

func (m *PageModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Render(handlers.PageCalendar))
	for _, page := range []string{
		handlers.PageCalendar,
		handlers.PageLogin,
		handlers.PageMembership,
		handlers.PageFind,
		handlers.PageChange,
	} {
		rg.GET("/"+page, m.Handler.Render(page))
	}
}
