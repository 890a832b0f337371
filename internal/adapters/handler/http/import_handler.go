package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/internal/core/services"
)

type ImportHandler struct {
	svc *services.ImportService
}

func NewImportHandler(svc *services.ImportService) *ImportHandler {
	return &ImportHandler{svc: svc}
}

type reviewedMealRequest struct {
	ID          string        `json:"id"`
	MealName    string        `json:"meal_name"`
	WeightGrams domain.Amount `json:"weight_grams"`
	Calories    domain.Amount `json:"calories"`
	Protein     domain.Amount `json:"protein"`
	Carbs       domain.Amount `json:"carbs"`
	Fat         domain.Amount `json:"fat"`
	Category    string        `json:"category"`
	ImageURL    string        `json:"image_url"`
}

type commitRequest struct {
	Meals []reviewedMealRequest `json:"meals"`
}

func (h *ImportHandler) RegisterRoutes(router *gin.RouterGroup) {
	imports := router.Group("/imports")
	{
		imports.POST("/extract", h.Extract)
		imports.POST("/commit", h.Commit)
	}
}

// uploadMimeType sniffs the content and falls back to the declared type when
// the bytes are not recognized.
func uploadMimeType(data []byte, declared string) string {
	detected := mimetype.Detect(data)
	if !detected.Is("application/octet-stream") {
		return detected.String()
	}
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = declared[:i]
	}
	return strings.TrimSpace(declared)
}

// Extract godoc
// @Summary  Read meals from an uploaded diet plan for review
// @Tags     imports
// @Accept   multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param    file formData file true "Image or PDF"
// @Success  200 {array} domain.ReviewedMeal
// @Failure  502 {object} map[string]string
// @Failure  503 {object} map[string]string
// @Router   /imports/extract [post]
func (h *ImportHandler) Extract(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	if header.Size > services.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large (max 10MB)"})
		return
	}

	f, err := header.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, services.MaxUploadBytes+1))
	if err != nil {
		handleError(c, err)
		return
	}

	reviewed, err := h.svc.Extract(c.Request.Context(), services.ExtractInput{
		File:     data,
		MimeType: uploadMimeType(data, header.Header.Get("Content-Type")),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviewed)
}

func (h *ImportHandler) Commit(c *gin.Context) {
	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	reviewed := make([]domain.ReviewedMeal, 0, len(req.Meals))
	for _, m := range req.Meals {
		reviewed = append(reviewed, domain.ReviewedMeal{
			ID: m.ID,
			ExtractedMeal: domain.ExtractedMeal{
				MealName:    m.MealName,
				WeightGrams: m.WeightGrams.Float(),
				Calories:    m.Calories.Float(),
				Protein:     m.Protein.Float(),
				Carbs:       m.Carbs.Float(),
				Fat:         m.Fat.Float(),
				Category:    domain.ParseCategory(m.Category),
			},
			ImageURL: m.ImageURL,
		})
	}

	added, err := h.svc.Commit(c.Request.Context(), reviewed)
	if err != nil {
		handleMealError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"imported": len(added),
		"meals":    added,
	})
}
