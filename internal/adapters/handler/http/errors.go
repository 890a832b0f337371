package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

// skipped answers requests that were valid but had nothing to do.
func skipped(c *gin.Context, err error) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "skipped",
		"message": err.Error(),
	})
}

func isSkip(err error) bool {
	return errors.Is(err, domain.ErrNothingToSave) ||
		errors.Is(err, domain.ErrNoMainMeals) ||
		errors.Is(err, domain.ErrInvalidWeight)
}

func isValidation(err error) bool {
	return errors.Is(err, domain.ErrMealNameEmpty) ||
		errors.Is(err, domain.ErrMealNameTooLong) ||
		errors.Is(err, domain.ErrNegativeNutrient) ||
		errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrInvalidTheme) ||
		errors.Is(err, domain.ErrInvalidAccent) ||
		errors.Is(err, domain.ErrInvalidSaveDate) ||
		errors.Is(err, domain.ErrEmptyFile) ||
		errors.Is(err, domain.ErrUnsupportedFile)
}

func handleError(c *gin.Context, err error) {
	switch {
	case isSkip(err):
		skipped(c, err)

	case isValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})

	case errors.Is(err, domain.ErrMealNotFound) || errors.Is(err, domain.ErrArchiveNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrStorageFull):
		_ = c.Error(err)
		c.JSON(http.StatusInsufficientStorage, gin.H{
			"error":   "storage limit exceeded",
			"message": "could not save data, storage may be full",
		})

	case errors.Is(err, domain.ErrExtractorDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrExtractionFailed):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "extraction failed",
			"message": "could not read meals from the file, please try another one",
		})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// handleMutationError treats a vanished target as an already applied change.
func handleMutationError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrMealNotFound) || errors.Is(err, domain.ErrArchiveNotFound) {
		c.Status(http.StatusNoContent)
		return
	}
	handleError(c, err)
}
