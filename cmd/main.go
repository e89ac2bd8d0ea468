package main

import (
	"github.com/alikalatearabi/salemina-main-app-backend/config"
	"github.com/alikalatearabi/salemina-main-app-backend/routes"
	"github.com/alikalatearabi/salemina-main-app-backend/services"
	"github.com/alikalatearabi/salemina-main-app-backend/utils"
)

func main() {
	config.InitDB()
	config.SeedReferenceData()
	utils.InitS3()

	hub := services.NewRealtimeHub()
	services.InitAlertDeps(config.DB, hub)

	r := routes.SetupRouter(hub)
	r.Run(":8080")
}
