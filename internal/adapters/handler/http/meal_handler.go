package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/internal/core/services"
)

type MealHandler struct {
	svc   *services.MealService
	diary *services.DiaryService
}

func NewMealHandler(svc *services.MealService, diary *services.DiaryService) *MealHandler {
	return &MealHandler{
		svc:   svc,
		diary: diary,
	}
}

type mealRequest struct {
	Name            string        `json:"name"`
	CaloriesPer100g domain.Amount `json:"calories_per_100g"`
	ProteinPer100g  domain.Amount `json:"protein_per_100g"`
	CarbsPer100g    domain.Amount `json:"carbs_per_100g"`
	FatPer100g      domain.Amount `json:"fat_per_100g"`
	DefaultWeight   domain.Amount `json:"default_weight"`
	Category        string        `json:"category"`
	ImageURL        string        `json:"image_url"`
	IsMainMeal      bool          `json:"is_main_meal"`
}

func (r mealRequest) fields() domain.MealFields {
	return domain.MealFields{
		Name: r.Name,
		Per100g: domain.NutrientDensity{
			Calories: r.CaloriesPer100g.Float(),
			Protein:  r.ProteinPer100g.Float(),
			Carbs:    r.CarbsPer100g.Float(),
			Fat:      r.FatPer100g.Float(),
		},
		DefaultWeight: r.DefaultWeight.Float(),
		Category:      domain.Category(r.Category),
		ImageURL:      r.ImageURL,
		IsMainMeal:    r.IsMainMeal,
	}
}

// servingRequest describes a meal by one serving's totals.
type servingRequest struct {
	Name          string        `json:"name"`
	ServingWeight domain.Amount `json:"serving_weight"`
	Calories      domain.Amount `json:"calories"`
	Protein       domain.Amount `json:"protein"`
	Carbs         domain.Amount `json:"carbs"`
	Fat           domain.Amount `json:"fat"`
	Category      string        `json:"category"`
	ImageURL      string        `json:"image_url"`
	IsMainMeal    bool          `json:"is_main_meal"`
}

type trackMealRequest struct {
	Weight domain.Amount `json:"weight"`
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.GET("", h.List)
		meals.POST("", h.Create)
		meals.POST("/from-serving", h.CreateFromServing)
		meals.GET("/:id", h.Get)
		meals.PUT("/:id", h.Update)
		meals.DELETE("/:id", h.Delete)
		meals.POST("/:id/main", h.ToggleMain)
		meals.POST("/:id/track", h.Track)
	}
}

// handleMealError rejects a negative default weight instead of skipping it.
func handleMealError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidWeight) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	handleMutationError(c, err)
}

// List godoc
// @Summary  Meal library
// @Tags     meals
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} domain.MealProfile
// @Router   /meals [get]
func (h *MealHandler) List(c *gin.Context) {
	meals, err := h.svc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *MealHandler) Get(c *gin.Context) {
	meal, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) Create(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	meal, err := h.svc.Create(c.Request.Context(), req.fields())
	if err != nil {
		handleMealError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *MealHandler) CreateFromServing(c *gin.Context) {
	var req servingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	meal, err := h.svc.CreateFromServing(c.Request.Context(), domain.ServingForm{
		Name:          req.Name,
		ServingWeight: req.ServingWeight.Float(),
		Calories:      req.Calories.Float(),
		Protein:       req.Protein.Float(),
		Carbs:         req.Carbs.Float(),
		Fat:           req.Fat.Float(),
		Category:      domain.Category(req.Category),
		ImageURL:      req.ImageURL,
		IsMainMeal:    req.IsMainMeal,
	})
	if err != nil {
		handleMealError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *MealHandler) Update(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	meal, err := h.svc.Update(c.Request.Context(), services.UpdateMealInput{
		ID:     c.Param("id"),
		Fields: req.fields(),
	})
	if err != nil {
		handleMealError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleMutationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MealHandler) ToggleMain(c *gin.Context) {
	meal, err := h.svc.ToggleMain(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// Track adds a serving of the meal to the active day. An empty body tracks
// the default weight.
func (h *MealHandler) Track(c *gin.Context) {
	var req trackMealRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	summary, err := h.diary.Track(c.Request.Context(), services.TrackInput{
		MealID: c.Param("id"),
		Weight: req.Weight.Float(),
	})
	if err != nil {
		handleMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
