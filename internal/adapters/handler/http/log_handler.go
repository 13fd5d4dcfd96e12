package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrilog-app/nutrilog-engine/internal/adapters/handler/http/middleware"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/services"
)

type LogHandler struct {
	svc *services.LogService
}

func NewLogHandler(svc *services.LogService) *LogHandler {
	return &LogHandler{
		svc: svc,
	}
}

type createItemRequest struct {
	Name      string             `json:"name" binding:"required"`
	Quantity  float64            `json:"quantity" binding:"required"`
	Unit      string             `json:"unit"`
	MealSlot  string             `json:"meal_slot" binding:"required"`
	LogDate   string             `json:"log_date" binding:"required"`
	Nutrients *nutrition.Profile `json:"nutrients"`
}

type updateItemRequest struct {
	Name     string `json:"name" binding:"required"`
	MealSlot string `json:"meal_slot" binding:"required"`
	Version  int    `json:"version"`
}

type rescaleItemRequest struct {
	Quantity float64 `json:"quantity" binding:"required"`
	Version  int     `json:"version"`
}

type multiplyItemRequest struct {
	Multiplier float64 `json:"multiplier" binding:"required"`
	Version    int     `json:"version"`
}

func (h *LogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logGroup := router.Group("/log")
	{
		logGroup.POST("", h.Create)
		logGroup.GET("", h.ListByDay)
		logGroup.GET("/sync", h.Sync)
		logGroup.PUT("/:id", h.Update)
		logGroup.PATCH("/:id/quantity", h.UpdateQuantity)
		logGroup.POST("/:id/scale", h.ApplyMultiplier)
		logGroup.DELETE("/:id", h.Delete)
	}
}

func (h *LogHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	logDate, err := time.Parse("2006-01-02", req.LogDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log_date format, expected YYYY-MM-DD"})
		return
	}

	var nutrients nutrition.Profile
	if req.Nutrients != nil {
		nutrients = *req.Nutrients
	}

	input := services.CreateItemInput{
		UserID:    userID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		MealSlot:  domain.MealSlot(req.MealSlot),
		LogDate:   logDate,
		Nutrients: nutrients,
	}

	item, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *LogHandler) ListByDay(c *gin.Context) {
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

	items, err := h.svc.ListByDay(c.Request.Context(), userID, day)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *LogHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.UpdateItemInput{
		ID:       c.Param("id"),
		UserID:   userID,
		Name:     req.Name,
		MealSlot: domain.MealSlot(req.MealSlot),
		Version:  req.Version,
	}

	item, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *LogHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	var req rescaleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.RescaleItemInput{
		ID:          c.Param("id"),
		UserID:      userID,
		NewQuantity: req.Quantity,
		Version:     req.Version,
	}

	item, err := h.svc.UpdateQuantity(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *LogHandler) ApplyMultiplier(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	var req multiplyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.MultiplyItemInput{
		ID:         c.Param("id"),
		UserID:     userID,
		Multiplier: req.Multiplier,
		Version:    req.Version,
	}

	item, err := h.svc.ApplyMultiplier(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *LogHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LogHandler) Sync(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	sinceStr := c.Query("since")
	var since time.Time

	if sinceStr != "" {
		var err error
		since, err = time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format (use RFC3339)"})
			return
		}
	}

	changes, err := h.svc.GetDelta(c.Request.Context(), userID, since)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"changes":   changes,
		"timestamp": time.Now().UTC(),
	})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrItemNotFound) || errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrItemConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "data has been modified elsewhere, please sync",
		})

	case errors.Is(err, nutrition.ErrInvalidQuantity) ||
		errors.Is(err, nutrition.ErrOutOfRange) ||
		errors.Is(err, domain.ErrItemNameEmpty) ||
		errors.Is(err, domain.ErrItemNameTooLong) ||
		errors.Is(err, domain.ErrInvalidMealSlot) ||
		errors.Is(err, domain.ErrInvalidLogDate) ||
		errors.Is(err, domain.ErrNegativeNutrient) ||
		errors.Is(err, domain.ErrInvalidSex) ||
		errors.Is(err, domain.ErrInvalidActivity) ||
		errors.Is(err, domain.ErrInvalidGoalWeight) ||
		errors.Is(err, domain.ErrInvalidTimeframe):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
