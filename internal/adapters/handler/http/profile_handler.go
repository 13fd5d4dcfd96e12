package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrilog-app/nutrilog-engine/internal/adapters/handler/http/middleware"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/services"
)

type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		svc: svc,
	}
}

type updateBiometricsRequest struct {
	Sex           *string  `json:"sex"`
	BirthDate     *string  `json:"birth_date"`
	ActivityLevel *string  `json:"activity_level"`
	HeightCm      *float64 `json:"height_cm"`
	HeightFeet    *float64 `json:"height_feet"`
	HeightInches  *float64 `json:"height_inches"`
	WeightKg      *float64 `json:"weight_kg"`
	WeightLbs     *float64 `json:"weight_lbs"`
}

type setGoalRequest struct {
	TargetWeightLbs *float64 `json:"target_weight_lbs"`
	TargetWeightKg  *float64 `json:"target_weight_kg"`
	TimeframeWeeks  int      `json:"timeframe_weeks" binding:"required"`
}

// profileResponse renders biometrics in both unit systems so clients never
// re-implement the conversions.
type profileResponse struct {
	ID         string               `json:"id"`
	Email      string               `json:"email"`
	Biometrics nutrition.Biometrics `json:"biometrics"`
	WeightGoal *domain.WeightGoal   `json:"weight_goal,omitempty"`

	HeightFeet   *int     `json:"height_feet,omitempty"`
	HeightInches *int     `json:"height_inches,omitempty"`
	WeightLbs    *float64 `json:"weight_lbs,omitempty"`
}

func newProfileResponse(user *domain.User) profileResponse {
	resp := profileResponse{
		ID:         user.ID,
		Email:      user.Email,
		Biometrics: user.Biometrics,
		WeightGoal: user.WeightGoal,
	}

	if user.Biometrics.HeightCm != nil {
		feet, inches := nutrition.CmToFeetInches(*user.Biometrics.HeightCm)
		resp.HeightFeet = &feet
		resp.HeightInches = &inches
	}
	if user.Biometrics.WeightKg != nil {
		lbs := nutrition.KgToLbs(*user.Biometrics.WeightKg)
		resp.WeightLbs = &lbs
	}

	return resp
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.PUT("/biometrics", h.UpdateBiometrics)
		profile.PUT("/goal", h.SetGoal)
		profile.DELETE("/goal", h.ClearGoal)
		profile.GET("/targets", h.Targets)
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

func (h *ProfileHandler) UpdateBiometrics(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	var req updateBiometricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.UpdateBiometricsInput{
		UserID:       userID,
		HeightCm:     req.HeightCm,
		HeightFeet:   req.HeightFeet,
		HeightInches: req.HeightInches,
		WeightKg:     req.WeightKg,
		WeightLbs:    req.WeightLbs,
	}

	if req.Sex != nil {
		sex := nutrition.Sex(*req.Sex)
		input.Sex = &sex
	}
	if req.ActivityLevel != nil {
		level := nutrition.ActivityLevel(*req.ActivityLevel)
		input.ActivityLevel = &level
	}
	if req.BirthDate != nil {
		birth, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth_date format, expected YYYY-MM-DD"})
			return
		}
		input.BirthDate = &birth
	}

	user, err := h.svc.UpdateBiometrics(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

func (h *ProfileHandler) SetGoal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	var req setGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	user, err := h.svc.SetWeightGoal(c.Request.Context(), services.SetWeightGoalInput{
		UserID:          userID,
		TargetWeightLbs: req.TargetWeightLbs,
		TargetWeightKg:  req.TargetWeightKg,
		TimeframeWeeks:  req.TimeframeWeeks,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

func (h *ProfileHandler) ClearGoal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	_, err := h.svc.ClearWeightGoal(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) Targets(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return
	}

	targets, err := h.svc.EnergyTargets(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, targets)
}
