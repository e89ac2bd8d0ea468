package routes

import (
	"net/http"

	"github.com/alikalatearabi/salemina-main-app-backend/config"
	"github.com/alikalatearabi/salemina-main-app-backend/controllers"
	"github.com/alikalatearabi/salemina-main-app-backend/middlewares"
	"github.com/alikalatearabi/salemina-main-app-backend/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.RealtimeHub) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Signup wizard + reference data (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup/phone", controllers.CheckPhone)
		auth.GET("/user/:phone", controllers.GetUserByPhone)
		auth.POST("/login", controllers.Login)

		auth.POST("/signup/basic-info", controllers.SaveBasicInfo)
		auth.POST("/signup/physical-attributes", controllers.SavePhysicalAttributes)
		auth.POST("/signup/health-info", controllers.SaveHealthInfo)
		auth.POST("/signup/dietary-preferences", controllers.SaveDietaryPreferences)
		auth.POST("/signup/allergies", controllers.SaveAllergies)
		auth.POST("/signup/water-intake", controllers.SaveWaterIntake)
		auth.POST("/signup/complete", controllers.CompleteSignup)
		auth.GET("/signup/progress/:userId", controllers.GetSignupProgress)

		auth.GET("/illnesses", controllers.GetIllnesses)
		auth.GET("/illnesses-with-levels", controllers.GetIllnessesWithLevels)
		auth.GET("/allergies", controllers.GetAllergies)
		auth.GET("/food-preferences", controllers.GetFoodPreferences)
		auth.GET("/activity-levels", controllers.GetActivityLevels)
		auth.GET("/appetite-modes", controllers.GetAppetiteModes)
	}

	// Users
	users := r.Group("/api/users")
	users.Use(middlewares.AuthMiddleware())
	{
		users.GET("", controllers.GetAllUsers)
		users.GET("/:id", controllers.GetUserByID)
		users.PUT("/:id", controllers.UpdateUser)
		users.DELETE("/:id", controllers.DeleteUser)
	}

	// Products
	rek, err := services.NewRekognitionService()
	if err != nil {
		rek = nil // photo lookup disabled without AWS config
	}
	productSvc := services.NewProductService(config.DB, rek)
	productCtl := controllers.NewProductController(productSvc)

	products := r.Group("/api/products")
	products.Use(middlewares.AuthMiddleware())
	{
		products.GET("", productCtl.List)
		products.GET("/search", productCtl.Search)
		products.GET("/barcode/:barcode", productCtl.GetByBarcode)
		products.POST("", productCtl.Create)
		products.PUT("/barcode/:barcode", productCtl.Update)
		products.DELETE("/barcode/:barcode", productCtl.Delete)
		products.POST("/barcode/:barcode/picture", productCtl.UploadPicture)
		products.POST("/recognize", productCtl.Recognize)
	}

	// Nutrition tracking + dashboards
	consumptionSvc := services.NewConsumptionService(config.DB)
	nutritionSvc := services.NewNutritionService(services.NewGormConsumedEntryStore(config.DB))
	nutritionCtl := controllers.NewNutritionController(consumptionSvc, nutritionSvc)

	nutrition := r.Group("/api/nutrition")
	nutrition.Use(middlewares.AuthMiddleware())
	{
		nutrition.POST("/consumed", nutritionCtl.AddConsumed)
		nutrition.GET("/consumed/user/:userId", nutritionCtl.ListConsumed)
		nutrition.DELETE("/consumed/:id", nutritionCtl.DeleteConsumed)

		nutrition.GET("/dashboard/daily/:userId", nutritionCtl.DailyDashboard)
		nutrition.GET("/dashboard/weekly/:userId", nutritionCtl.WeeklyDashboard)
		nutrition.GET("/dashboard/monthly/:userId", nutritionCtl.MonthlyDashboard)

		nutrition.GET("/alerts/:userId", nutritionCtl.ListAlerts)
	}

	// Realtime alerts
	rtCtl := controllers.NewRealtimeController(hub)
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/alerts", rtCtl.AlertsWS)
	}

	return r
}
