package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rituday/internal/application"
	"github.com/oksasatya/rituday/internal/interface/middleware"
	"github.com/oksasatya/rituday/pkg/response"
)

// ParamKey is the shared first path segment of ritual routes: a year on the
// list routes and a ritual id everywhere else.
const ParamKey = "key"

type RitualHandler struct {
	Svc    *application.RitualService
	Logger *logrus.Logger
}

func NewRitualHandler(svc *application.RitualService, logger *logrus.Logger) *RitualHandler {
	return &RitualHandler{Svc: svc, Logger: logger}
}

type enrollRequest struct {
	Category   string `form:"ritual_category"`
	Impression string `form:"ritual_impression"`
}

func intParams(c *gin.Context, names ...string) ([]int, bool) {
	out := make([]int, 0, len(names))
	for _, n := range names {
		v, err := strconv.Atoi(c.Param(n))
		if err != nil {
			response.WriteError(c, http.StatusBadRequest, "invalid "+n)
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// ListByMonth GET /ritual/:year/:month/list
func (h *RitualHandler) ListByMonth(c *gin.Context) {
	p, ok := intParams(c, ParamKey, "month")
	if !ok {
		return
	}
	list, err := h.Svc.ListByMonth(c.Request.Context(), p[0], p[1])
	if err != nil {
		storeFault(c, h.Logger, "list rituals failed", err)
		return
	}
	response.Success(c, response.Body{"list": list})
}

// ListByDay GET /ritual/:year/:month/:day/list
func (h *RitualHandler) ListByDay(c *gin.Context) {
	p, ok := intParams(c, ParamKey, "month", "day")
	if !ok {
		return
	}
	list, err := h.Svc.ListByDay(c.Request.Context(), p[0], p[1], p[2])
	if err != nil {
		storeFault(c, h.Logger, "list rituals failed", err)
		return
	}
	response.Success(c, response.Body{"list": list})
}

// ShowOne GET /ritual/:ritualId. An unknown id answers {result: success, ritual: null}.
func (h *RitualHandler) ShowOne(c *gin.Context) {
	r, err := h.Svc.Get(c.Request.Context(), c.Param(ParamKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, response.Body{"ritual": r})
}

// Search GET /ritual/search?q=&size=
func (h *RitualHandler) Search(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		response.WriteError(c, http.StatusBadRequest, "invalid size")
		return
	}
	list, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		storeFault(c, h.Logger, "search rituals failed", err)
		return
	}
	response.Success(c, response.Body{"list": list})
}

// Enroll POST /ritual/enrollment (bearer)
func (h *RitualHandler) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBind(&req); err != nil {
		response.NoContent(c)
		return
	}
	_, err := h.Svc.Enroll(c.Request.Context(), req.Category, req.Impression, c.GetString(middleware.CtxUserEmailKey))
	if errors.Is(err, application.ErrNoContent) {
		response.NoContent(c)
		return
	}
	if err != nil {
		storeFault(c, h.Logger, "enroll ritual failed", err)
		return
	}
	response.Success(c, nil)
}

// Update POST /ritual/:ritualId/update (bearer, owner only)
func (h *RitualHandler) Update(c *gin.Context) {
	content, ok := c.GetPostForm("newContent")
	if !ok {
		response.Fail(c, response.Body{"error": map[string]string{"newContent": "is required"}})
		return
	}
	err := h.Svc.UpdateContent(c.Request.Context(), c.Param(ParamKey), content, c.GetString(middleware.CtxUserEmailKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete POST /ritual/:ritualId/delete (bearer, owner only)
func (h *RitualHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param(ParamKey), c.GetString(middleware.CtxUserEmailKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *RitualHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidRitualID):
		response.WriteError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrRitualNotFound):
		response.WriteError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, application.ErrForbidden):
		response.WriteError(c, http.StatusForbidden, err.Error())
	default:
		storeFault(c, h.Logger, "ritual request failed", err)
	}
}
