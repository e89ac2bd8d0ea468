package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alikalatearabi/salemina-main-app-backend/services"

	"github.com/gin-gonic/gin"
)

// POST /api/auth/signup/phone
func CheckPhone(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	user, existed, err := services.StartSignup(req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if existed && user.SignupComplete {
		c.JSON(http.StatusOK, gin.H{
			"exists":         true,
			"signupComplete": true,
			"userId":         user.ID,
		})
		return
	}
	if existed {
		c.JSON(http.StatusOK, gin.H{
			"exists":         true,
			"signupComplete": false,
			"userId":         user.ID,
			"nextStep":       services.NextSignupStep(user),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"exists":         false,
		"signupComplete": false,
		"userId":         user.ID,
		"nextStep":       services.StepBasicInfo,
	})
}

// GET /api/auth/user/:phone
func GetUserByPhone(c *gin.Context) {
	user, err := services.FindUserByPhone(c.Param("phone"))
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := services.AuthenticateUser(req.Phone, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// POST /api/auth/signup/basic-info
func SaveBasicInfo(c *gin.Context) {
	var req struct {
		UserID    uint   `json:"userId" binding:"required"`
		Name      string `json:"name" binding:"required"`
		Gender    string `json:"gender" binding:"required"`
		BirthDate string `json:"birthDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID, name, gender, and birth date are required"})
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth date. Use YYYY-MM-DD"})
		return
	}

	user, err := services.SaveBasicInfo(req.UserID, req.Name, req.Gender, birthDate)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	stepDone(c, user.ID, services.StepPhysicalAttributes)
}

// POST /api/auth/signup/physical-attributes
func SavePhysicalAttributes(c *gin.Context) {
	var req struct {
		UserID      uint    `json:"userId" binding:"required"`
		Height      float64 `json:"height" binding:"required,gt=0"`
		Weight      float64 `json:"weight" binding:"required,gt=0"`
		IdealWeight float64 `json:"idealWeight" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID, height, weight, and ideal weight are required"})
		return
	}

	user, err := services.SavePhysicalAttributes(req.UserID, req.Height, req.Weight, req.IdealWeight)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	stepDone(c, user.ID, services.StepHealthInfo)
}

// POST /api/auth/signup/health-info
func SaveHealthInfo(c *gin.Context) {
	var req struct {
		UserID        uint                        `json:"userId" binding:"required"`
		ActivityLevel string                      `json:"activityLevel" binding:"required"`
		Illnesses     []services.IllnessSelection `json:"illnesses"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and activity level are required"})
		return
	}

	user, err := services.SaveHealthInfo(req.UserID, req.ActivityLevel, req.Illnesses)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	stepDone(c, user.ID, services.StepDietaryPreferences)
}

// POST /api/auth/signup/dietary-preferences
func SaveDietaryPreferences(c *gin.Context) {
	var req struct {
		UserID          uint   `json:"userId" binding:"required"`
		AppetiteMode    string `json:"appetiteMode" binding:"required"`
		FoodPreferences []uint `json:"foodPreferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and appetite mode are required"})
		return
	}

	user, err := services.SaveDietaryPreferences(req.UserID, req.AppetiteMode, req.FoodPreferences)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	stepDone(c, user.ID, services.StepAllergies)
}

// POST /api/auth/signup/allergies
func SaveAllergies(c *gin.Context) {
	var req struct {
		UserID    uint   `json:"userId" binding:"required"`
		Allergies []uint `json:"allergies"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	user, err := services.SaveAllergies(req.UserID, req.Allergies)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	stepDone(c, user.ID, services.StepWaterIntake)
}

// POST /api/auth/signup/water-intake
func SaveWaterIntake(c *gin.Context) {
	var req struct {
		UserID      uint    `json:"userId" binding:"required"`
		WaterIntake float64 `json:"waterIntake" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and water intake are required"})
		return
	}

	user, err := services.SaveWaterIntake(req.UserID, req.WaterIntake)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	stepDone(c, user.ID, services.StepComplete)
}

// POST /api/auth/signup/complete
func CompleteSignup(c *gin.Context) {
	var req struct {
		UserID   uint   `json:"userId" binding:"required"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	user, err := services.CompleteSignup(req.UserID, req.Password)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"userId":  user.ID,
		"message": "Signup completed successfully",
	})
}

// GET /api/auth/signup/progress/:userId
func GetSignupProgress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	status, err := services.SignupProgress(uint(id))
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

func stepDone(c *gin.Context, userID uint, nextStep string) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"userId":   userID,
		"nextStep": nextStep,
	})
}

// ---------- reference data ----------

func GetIllnesses(c *gin.Context) {
	illnesses, err := services.ListIllnesses(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, illnesses)
}

func GetIllnessesWithLevels(c *gin.Context) {
	illnesses, err := services.ListIllnesses(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, illnesses)
}

func GetAllergies(c *gin.Context) {
	allergies, err := services.ListAllergies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, allergies)
}

func GetFoodPreferences(c *gin.Context) {
	prefs, err := services.ListFoodPreferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func GetActivityLevels(c *gin.Context) {
	c.JSON(http.StatusOK, services.ActivityLevels())
}

func GetAppetiteModes(c *gin.Context) {
	c.JSON(http.StatusOK, services.AppetiteModes())
}
