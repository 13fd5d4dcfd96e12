package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrilog-app/nutrilog-engine/internal/adapters/handler/http/middleware"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/services"
)

type SummaryHandler struct {
	svc *services.LogService
}

func NewSummaryHandler(svc *services.LogService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

func (h *SummaryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/summary/daily", h.GetDailySummary)
	r.GET("/summary/range", h.GetRangeSummaries)
	r.GET("/nutrients", h.ListRecommendedValues)
}

func (h *SummaryHandler) GetDailySummary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	day := time.Now().UTC()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	summary, err := h.svc.DaySummary(c.Request.Context(), userID, day)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *SummaryHandler) GetRangeSummaries(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	endDateStr := c.Query("end_date")
	startDateStr := c.Query("start_date")

	var endDate, startDate time.Time
	var err error

	if endDateStr == "" {
		endDate = time.Now().UTC()
	} else {
		endDate, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, expected YYYY-MM-DD"})
			return
		}
	}

	if startDateStr == "" {
		startDate = endDate.AddDate(0, 0, -6)
	} else {
		startDate, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
			return
		}
	}

	if startDate.After(endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date cannot be after end_date"})
		return
	}

	const maxDaysRange = 366
	daysDiff := endDate.Sub(startDate).Hours() / 24
	if daysDiff > maxDaysRange {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date range too large, max 1 year allowed"})
		return
	}

	summaries, err := h.svc.RangeSummaries(c.Request.Context(), userID, startDate, endDate)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start_date": startDate.Format("2006-01-02"),
		"end_date":   endDate.Format("2006-01-02"),
		"days":       summaries,
	})
}

// ListRecommendedValues serves the static recommended-daily-value table so
// clients can render targets without hardcoding them.
func (h *SummaryHandler) ListRecommendedValues(c *gin.Context) {
	c.JSON(http.StatusOK, nutrition.RecommendedValues())
}
