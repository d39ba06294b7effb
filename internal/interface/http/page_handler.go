package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page names served from the embedded web templates.
const (
	PageCalendar   = "calendar.html"
	PageLogin      = "login.html"
	PageMembership = "membership.html"
	PageFind       = "find.html"
	PageChange     = "change.html"
)

type PageHandler struct {
	AppName string
}

func NewPageHandler(appName string) *PageHandler {
	return &PageHandler{AppName: appName}
}

// Render returns a handler that renders the named page.
func (h *PageHandler) Render(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, gin.H{"AppName": h.AppName})
	}
}
