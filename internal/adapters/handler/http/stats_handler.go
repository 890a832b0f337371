package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/internal/core/services"
)

const maxBalanceDays = 366

type StatsHandler struct {
	svc *services.StatsService
	loc *time.Location
}

func NewStatsHandler(svc *services.StatsService, loc *time.Location) *StatsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsHandler{svc: svc, loc: loc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/weekly", h.GetWeeklyBalance)
}

// GetWeeklyBalance godoc
// @Summary  Calories against goal for the days ending at end_date
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Param    end_date query string false "YYYY-MM-DD, defaults to today"
// @Param    days     query int    false "Window size, defaults to 7"
// @Success  200 {object} domain.WeeklyBalance
// @Router   /stats/weekly [get]
func (h *StatsHandler) GetWeeklyBalance(c *gin.Context) {
	input := domain.StatsInput{Location: h.loc}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		endDate, err := time.ParseInLocation(domain.DateLayout, endDateStr, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, expected YYYY-MM-DD"})
			return
		}
		input.EndDate = endDate
	}

	if daysStr := c.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		if days > maxBalanceDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date range too large, max 1 year allowed"})
			return
		}
		input.Days = days
	}

	balance, err := h.svc.GetWeeklyBalance(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}
