package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/internal/core/services"
)

type SettingsHandler struct {
	svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type goalsRequest struct {
	Calories domain.Amount `json:"calories"`
	Protein  domain.Amount `json:"protein"`
	Carbs    domain.Amount `json:"carbs"`
	Fat      domain.Amount `json:"fat"`
}

type preferencesRequest struct {
	Theme  string `json:"theme" binding:"required"`
	Accent string `json:"accent" binding:"required"`
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("/goals", h.GetGoals)
		settings.PUT("/goals", h.UpdateGoals)
		settings.GET("/preferences", h.GetPreferences)
		settings.PUT("/preferences", h.UpdatePreferences)
	}
}

func (h *SettingsHandler) GetGoals(c *gin.Context) {
	goals, err := h.svc.Goals(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// UpdateGoals godoc
// @Summary  Replace the daily goals; the active day picks them up immediately
// @Tags     settings
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} domain.DailyGoals
// @Router   /settings/goals [put]
func (h *SettingsHandler) UpdateGoals(c *gin.Context) {
	var req goalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	goals, err := h.svc.UpdateGoals(c.Request.Context(), domain.DailyGoals{
		Calories: req.Calories.Int(),
		Protein:  req.Protein.Int(),
		Carbs:    req.Carbs.Int(),
		Fat:      req.Fat.Int(),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *SettingsHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.svc.Preferences(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *SettingsHandler) UpdatePreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	prefs, err := h.svc.UpdatePreferences(c.Request.Context(), domain.Preferences{
		Theme:  req.Theme,
		Accent: req.Accent,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
