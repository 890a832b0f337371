package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-diet/internal/core/services"
)

type HistoryHandler struct {
	svc *services.HistoryService
}

func NewHistoryHandler(svc *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	history := router.Group("/history")
	{
		history.GET("", h.List)
		history.GET("/:id", h.Get)
		history.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary  Archived days, newest first
// @Tags     history
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} domain.ArchivedDay
// @Router   /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	archive, err := h.svc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, archive)
}

func (h *HistoryHandler) Get(c *gin.Context) {
	day, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *HistoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleMutationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
