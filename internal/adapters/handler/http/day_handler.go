package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/internal/core/services"
)

type DayHandler struct {
	svc *services.DiaryService
	loc *time.Location
}

func NewDayHandler(svc *services.DiaryService, loc *time.Location) *DayHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DayHandler{
		svc: svc,
		loc: loc,
	}
}

type trackServingRequest struct {
	MealID string        `json:"meal_id" binding:"required"`
	Weight domain.Amount `json:"weight"`
}

type quickAddRequest struct {
	Name     string        `json:"name"`
	Weight   domain.Amount `json:"weight"`
	Calories domain.Amount `json:"calories"`
	Protein  domain.Amount `json:"protein"`
	Carbs    domain.Amount `json:"carbs"`
	Fat      domain.Amount `json:"fat"`
}

type reweighRequest struct {
	Weight domain.Amount `json:"weight"`
}

type saveDayRequest struct {
	Date string `json:"date"`
}

func (h *DayHandler) RegisterRoutes(router *gin.RouterGroup) {
	day := router.Group("/day")
	{
		day.GET("", h.Today)
		day.POST("/servings", h.Track)
		day.POST("/quick-add", h.QuickAdd)
		day.DELETE("/servings/:id", h.Remove)
		day.POST("/servings/:id/toggle", h.ToggleEaten)
		day.PUT("/servings/:id/weight", h.Reweigh)
		day.POST("/main-meals", h.TrackMainMeals)
		day.POST("/save", h.Save)
	}
}

// Today godoc
// @Summary  Active day with totals and category groups
// @Tags     day
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} domain.DaySummary
// @Router   /day [get]
func (h *DayHandler) Today(c *gin.Context) {
	summary, err := h.svc.Today(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DayHandler) Track(c *gin.Context) {
	var req trackServingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	summary, err := h.svc.Track(c.Request.Context(), services.TrackInput{
		MealID: req.MealID,
		Weight: req.Weight.Float(),
	})
	if err != nil {
		handleMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DayHandler) QuickAdd(c *gin.Context) {
	var req quickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	summary, err := h.svc.QuickAdd(c.Request.Context(), domain.QuickAddInput{
		Name:     req.Name,
		Weight:   req.Weight.Float(),
		Calories: req.Calories.Int(),
		Protein:  req.Protein.Int(),
		Carbs:    req.Carbs.Int(),
		Fat:      req.Fat.Int(),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

func (h *DayHandler) Remove(c *gin.Context) {
	summary, err := h.svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DayHandler) ToggleEaten(c *gin.Context) {
	summary, err := h.svc.ToggleEaten(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DayHandler) Reweigh(c *gin.Context) {
	var req reweighRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	summary, err := h.svc.Reweigh(c.Request.Context(), services.ReweighInput{
		ServingID: c.Param("id"),
		Weight:    req.Weight.Float(),
	})
	if err != nil {
		handleMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DayHandler) TrackMainMeals(c *gin.Context) {
	summary, err := h.svc.TrackMainMeals(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Save godoc
// @Summary  Archive the active day under a date and start a fresh one
// @Tags     day
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body saveDayRequest false "Date as YYYY-MM-DD, defaults to today"
// @Success  200 {object} map[string]interface{}
// @Router   /day/save [post]
func (h *DayHandler) Save(c *gin.Context) {
	var req saveDayRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	var chosen time.Time
	if req.Date != "" {
		parsed, err := time.ParseInLocation(domain.DateLayout, req.Date, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
			return
		}
		chosen = parsed
	}

	result, err := h.svc.SaveDay(c.Request.Context(), services.SaveDayInput{Date: chosen})
	if err != nil {
		handleError(c, err)
		return
	}

	status := "saved"
	if result.Updated {
		status = "updated"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"message": fmt.Sprintf("Log for %s %s", result.Entry.DisplayDate, status),
		"entry":   result.Entry,
	})
}
