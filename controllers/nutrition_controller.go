package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alikalatearabi/salemina-main-app-backend/services"

	"github.com/gin-gonic/gin"
)

type NutritionController struct {
	Consumption *services.ConsumptionService
	Nutrition   *services.NutritionService
}

func NewNutritionController(cs *services.ConsumptionService, ns *services.NutritionService) *NutritionController {
	return &NutritionController{Consumption: cs, Nutrition: ns}
}

type addConsumedRequest struct {
	UserID      uint     `json:"userId" binding:"required"`
	ProductID   uint     `json:"productId" binding:"required"`
	Quantity    float64  `json:"quantity" binding:"required,gt=0"`
	ServingSize *float64 `json:"servingSize"`
	Unit        string   `json:"unit"`
	MealType    string   `json:"mealType" binding:"required"`
	ConsumedAt  *string  `json:"consumedAt"`
}

// POST /api/nutrition/consumed
func (h *NutritionController) AddConsumed(c *gin.Context) {
	var req addConsumedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID, product ID, quantity, and meal type are required"})
		return
	}

	in := services.AddConsumedInput{
		UserID:      req.UserID,
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		ServingSize: req.ServingSize,
		Unit:        req.Unit,
		MealType:    req.MealType,
	}
	if req.ConsumedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ConsumedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid consumedAt timestamp"})
			return
		}
		in.ConsumedAt = &t
	}

	entry, err := h.Consumption.AddConsumed(c.Request.Context(), in)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /api/nutrition/consumed/user/:userId?startDate=&endDate=&mealType=
func (h *NutritionController) ListConsumed(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var start, end *time.Time
	if v := c.Query("startDate"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		start = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		e := t.Add(24*time.Hour - time.Nanosecond)
		end = &e
	}

	entries, err := h.Consumption.ListConsumed(c.Request.Context(), userID, start, end, c.Query("mealType"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// DELETE /api/nutrition/consumed/:id
func (h *NutritionController) DeleteConsumed(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Consumed product ID is required"})
		return
	}
	if err := h.Consumption.DeleteConsumed(c.Request.Context(), uint(id)); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/nutrition/dashboard/daily/:userId?date=YYYY-MM-DD
func (h *NutritionController) DailyDashboard(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	date := time.Now()
	if v := c.Query("date"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		date = t
	}

	out, err := h.Nutrition.Daily(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/nutrition/dashboard/weekly/:userId?endDate=YYYY-MM-DD
func (h *NutritionController) WeeklyDashboard(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	endDate := time.Now()
	if v := c.Query("endDate"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		endDate = t
	}

	out, err := h.Nutrition.Weekly(c.Request.Context(), userID, endDate)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/nutrition/dashboard/monthly/:userId?month=&year=
func (h *NutritionController) MonthlyDashboard(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		month = m
	}

	out, err := h.Nutrition.Monthly(c.Request.Context(), userID, year, month)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/nutrition/alerts/:userId
func (h *NutritionController) ListAlerts(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	alerts, err := services.ListAlerts(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// --- helpers ---

func userIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("userId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return 0, false
	}
	return uint(id), true
}

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrConsumedNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
