package routes

import (
	"quickzone-backend/constants"
	"quickzone-backend/controllers/auth"
	"quickzone-backend/controllers/mission"
	"quickzone-backend/controllers/parcel"
	"quickzone-backend/controllers/payment"
	"quickzone-backend/controllers/shipper"
	"quickzone-backend/controllers/user"
	"quickzone-backend/logger"
	"quickzone-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger)
	parcelController := parcel.NewParcelController(db, asyncLogger)
	missionController := mission.NewMissionController(db, asyncLogger)
	paymentController := payment.NewPaymentController(db, asyncLogger)
	shipperController := shipper.NewShipperController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "quickzone-backend",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authController.Login)
	api.Post("/register", authController.Register)
	api.Get("/track/:trackingNumber", parcelController.Track)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAnyPermission())
	authGroup.Get("/profile", user.GetUserInfo)
	authGroup.Post("/logout", authController.LogOut)

	/*=============================================================================
	| Parcel Routes
	===============================================================================*/
	parcelGroup := api.Group("/parcels")

	parcelGroup.Post("/", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermCommercialFull,
		constants.PermChefAgenceFull,
		constants.PermMembreAgenceFull,
		constants.PermExpediteurFull,
	), parcelController.Store)

	parcelGroup.Get("/", middleware.RequireAnyPermission(), parcelController.Index)
	parcelGroup.Get("/:id", middleware.RequireAnyPermission(), parcelController.Show)

	parcelGroup.Put("/:id", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermChefAgenceFull,
		constants.PermMembreAgenceFull,
		constants.PermLivreurFull,
	), parcelController.Update)

	parcelGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermAdminFull,
	), parcelController.Delete)

	parcelGroup.Get("/:id/tracking-history", middleware.RequireAnyPermission(), parcelController.TrackingHistory)
	parcelGroup.Get("/:id/timeline", middleware.RequireAnyPermission(), parcelController.Timeline)

	/*=============================================================================
	| Pickup Mission Routes
	===============================================================================*/
	missionGroup := api.Group("/missions")

	missionGroup.Post("/", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermChefAgenceFull,
		constants.PermMembreAgenceFull,
	), missionController.Store)

	missionGroup.Get("/", middleware.RequireAnyPermission(), missionController.Index)
	missionGroup.Get("/:id", middleware.RequireAnyPermission(), missionController.Show)

	missionGroup.Post("/:id/scan", middleware.RequirePermissions(
		constants.PermLivreurFull,
		constants.PermChefAgenceFull,
		constants.PermMembreAgenceFull,
	), missionController.Scan)

	missionGroup.Post("/:id/complete", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermLivreurFull,
		constants.PermChefAgenceFull,
	), missionController.Complete)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	paymentGroup := api.Group("/payments")

	paymentGroup.Post("/", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermFinanceFull,
	), paymentController.Store)

	paymentGroup.Get("/", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermFinanceFull,
		constants.PermChefAgenceFull,
	), paymentController.Index)

	paymentGroup.Get("/:id", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermFinanceFull,
		constants.PermChefAgenceFull,
	), paymentController.Show)

	/*=============================================================================
	| Shipper Routes
	===============================================================================*/
	shipperGroup := api.Group("/shippers")

	shipperGroup.Post("/", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermCommercialFull,
		constants.PermChefAgenceFull,
	), shipperController.Store)

	shipperGroup.Get("/", middleware.RequireAnyPermission(), shipperController.Index)
	shipperGroup.Get("/:id", middleware.RequireAnyPermission(), shipperController.Show)
}
