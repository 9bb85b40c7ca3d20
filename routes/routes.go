package routes

import (
	"parcel-tracking/constants"
	"parcel-tracking/controllers/history"
	"parcel-tracking/controllers/notification"
	"parcel-tracking/controllers/organization"
	"parcel-tracking/controllers/parcel"
	"parcel-tracking/controllers/review"
	"parcel-tracking/controllers/server"
	"parcel-tracking/controllers/tracking"
	"parcel-tracking/logger"
	"parcel-tracking/middleware"
	"parcel-tracking/services/events"
	historyService "parcel-tracking/services/history"
	notificationService "parcel-tracking/services/notification"
	orgService "parcel-tracking/services/organization"
	parcelService "parcel-tracking/services/parcel"
	reviewService "parcel-tracking/services/review"
	trackingService "parcel-tracking/services/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, auth *middleware.Auth, publisher events.Publisher, asyncLogger *logger.AsyncLogger) {
	parcelController := parcel.NewParcelController(parcelService.NewParcelService(db, publisher), asyncLogger)
	organizationController := organization.NewOrganizationController(orgService.NewOrganizationService(db), asyncLogger)
	historyController := history.NewHistoryController(historyService.NewHistoryService(db), asyncLogger)
	reviewController := review.NewReviewController(reviewService.NewReviewService(db), asyncLogger)
	trackingController := tracking.NewTrackingController(trackingService.NewTrackingService(db), asyncLogger)
	notificationController := notification.NewNotificationController(notificationService.NewNotificationService(db), asyncLogger)
	serverController := server.NewServerController(db)

	/*=============================================================================
	| Operational Routes
	===============================================================================*/
	app.Get("/health", serverController.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	/*=============================================================================
	| API Routes
	|
	| Every resource accepts anonymous callers. A token, when present, must be
	| valid and identifies the caller for personalized endpoints.
	===============================================================================*/
	api := app.Group("/api", auth.OptionalAuthentication())

	/*=============================================================================
	| Organization Routes
	===============================================================================*/
	orgs := api.Group("/organizations")
	orgs.Get("/", organizationController.Index)
	orgs.Post("/", organizationController.Store)
	orgs.Get("/:id/statistics", organizationController.Statistics)
	orgs.Get("/:id", organizationController.Show)
	orgs.Put("/:id", organizationController.Update)
	orgs.Patch("/:id", organizationController.Update)
	orgs.Delete("/:id", auth.RequirePermissions(
		constants.OrganizationAdminPermissions...,
	), organizationController.Destroy)

	departments := api.Group("/departments")
	departments.Get("/", organizationController.IndexDepartments)
	departments.Post("/", organizationController.StoreDepartment)
	departments.Get("/:id", organizationController.ShowDepartment)
	departments.Put("/:id", organizationController.UpdateDepartment)
	departments.Patch("/:id", organizationController.UpdateDepartment)
	departments.Delete("/:id", organizationController.DestroyDepartment)

	/*=============================================================================
	| Parcel Routes
	===============================================================================*/
	parcels := api.Group("/parcels")
	parcels.Get("/", parcelController.Index)
	parcels.Post("/", parcelController.Store)
	parcels.Get("/search_by_barcode", parcelController.SearchByBarcode)
	parcels.Get("/my_parcels", parcelController.MyParcels)
	parcels.Post("/generate_tracking_number", parcelController.GenerateTrackingNumber)
	parcels.Post("/:id/update_status", parcelController.UpdateStatus)
	parcels.Get("/:id", parcelController.Show)
	parcels.Put("/:id", parcelController.Update)
	parcels.Patch("/:id", parcelController.Update)
	parcels.Delete("/:id", parcelController.Destroy)

	/*=============================================================================
	| History Routes
	===============================================================================*/
	statusHistory := api.Group("/parcel-status-history")
	statusHistory.Get("/", historyController.IndexStatus)
	statusHistory.Get("/:id", historyController.ShowStatus)

	deliveryHistory := api.Group("/parcel-delivery-history")
	deliveryHistory.Get("/", historyController.IndexDelivery)
	deliveryHistory.Get("/:id", historyController.ShowDelivery)

	/*=============================================================================
	| Review Routes
	===============================================================================*/
	reviews := api.Group("/reviews")
	reviews.Get("/", reviewController.Index)
	reviews.Post("/", auth.RequireAuthentication(), reviewController.Store)
	reviews.Get("/:id", reviewController.Show)
	reviews.Put("/:id", reviewController.Update)
	reviews.Patch("/:id", reviewController.Update)
	reviews.Delete("/:id", reviewController.Destroy)

	/*=============================================================================
	| Tracking Routes
	===============================================================================*/
	locations := api.Group("/tracking-locations")
	locations.Get("/", trackingController.IndexLocations)
	locations.Post("/", trackingController.StoreLocation)
	locations.Get("/:id", trackingController.ShowLocation)
	locations.Put("/:id", trackingController.UpdateLocation)
	locations.Patch("/:id", trackingController.UpdateLocation)
	locations.Delete("/:id", trackingController.DestroyLocation)

	deliveryRoutes := api.Group("/delivery-routes")
	deliveryRoutes.Get("/", trackingController.IndexRoutes)
	deliveryRoutes.Post("/", trackingController.StoreRoute)
	deliveryRoutes.Get("/:id", trackingController.ShowRoute)
	deliveryRoutes.Put("/:id", trackingController.UpdateRoute)
	deliveryRoutes.Patch("/:id", trackingController.UpdateRoute)
	deliveryRoutes.Delete("/:id", trackingController.DestroyRoute)

	/*=============================================================================
	| Notification Routes
	===============================================================================*/
	notifications := api.Group("/notifications")
	notifications.Get("/", notificationController.Index)
	notifications.Post("/", auth.RequireAuthentication(), notificationController.Store)
	notifications.Post("/mark_all_as_read", auth.RequireAuthentication(), notificationController.MarkAllAsRead)
	notifications.Post("/:id/mark_as_read", notificationController.MarkAsRead)
	notifications.Get("/:id", notificationController.Show)
	notifications.Put("/:id", notificationController.Update)
	notifications.Patch("/:id", notificationController.Update)
	notifications.Delete("/:id", notificationController.Destroy)
}
