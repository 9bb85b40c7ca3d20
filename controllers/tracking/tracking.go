package tracking

import (
	"parcel-tracking/controllers/base"
	"parcel-tracking/logger"
	trackingService "parcel-tracking/services/tracking"
	trackingTypes "parcel-tracking/types/tracking"

	"github.com/gofiber/fiber/v2"
)

// TrackingController handles tracking location and delivery route requests
type TrackingController struct {
	base.Controller
	Service *trackingService.Service
}

func NewTrackingController(service *trackingService.Service, asyncLogger *logger.AsyncLogger) *TrackingController {
	return &TrackingController{
		Controller: base.Controller{Logger: asyncLogger},
		Service:    service,
	}
}

/*=============================================================================
| Tracking locations
===============================================================================*/

func (tc *TrackingController) IndexLocations(c *fiber.Ctx) error {
	filter := trackingTypes.LocationFilter{
		Status:   c.Query("status"),
		Ordering: c.Query("ordering"),
	}
	var err error
	if filter.ParcelID, err = base.QueryUint(c, "parcel"); err != nil {
		return tc.SendError(c, err)
	}

	locations, err := tc.Service.ListLocations(c.UserContext(), filter)
	if err != nil {
		return tc.SendError(c, err)
	}
	return tc.Respond(c, fiber.StatusOK, "Tracking locations retrieved successfully", locations)
}

func (tc *TrackingController) ShowLocation(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return tc.SendError(c, err)
	}
	loc, err := tc.Service.GetLocation(c.UserContext(), id)
	if err != nil {
		return tc.SendError(c, err)
	}
	return tc.Respond(c, fiber.StatusOK, "Tracking location retrieved successfully", loc)
}

func (tc *TrackingController) StoreLocation(c *fiber.Ctx) error {
	var request trackingTypes.LocationRequest
	if err := tc.ParseBody(c, &request); err != nil {
		return tc.SendError(c, err)
	}
	loc, err := tc.Service.CreateLocation(c.UserContext(), &request)
	if err != nil {
		return tc.SendError(c, err)
	}
	return tc.Respond(c, fiber.StatusCreated, "Tracking location created successfully", loc)
}

func (tc *TrackingController) UpdateLocation(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return tc.SendError(c, err)
	}
	var request trackingTypes.LocationRequest
	if err := tc.ParseBody(c, &request); err != nil {
		return tc.SendError(c, err)
	}
	loc, err := tc.Service.UpdateLocation(c.UserContext(), id, &request, c.Method() == fiber.MethodPut)
	if err != nil {
		return tc.SendError(c, err)
	}
	return tc.Respond(c, fiber.StatusOK, "Tracking location updated successfully", loc)
}

func (tc *TrackingController) DestroyLocation(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return tc.SendError(c, err)
	}
	if err := tc.Service.DeleteLocation(c.UserContext(), id); err != nil {
		return tc.SendError(c, err)
	}
	return tc.NoContent(c)
}

/*=============================================================================
| Delivery routes
===============================================================================*/

func (tc *TrackingController) IndexRoutes(c *fiber.Ctx) error {
	filter := trackingTypes.RouteFilter{
		Status:   c.Query("status"),
		Ordering: c.Query("ordering"),
	}
	var err error
	if filter.ParcelID, err = base.QueryUint(c, "parcel"); err != nil {
		return tc.SendError(c, err)
	}

	routes, err := tc.Service.ListRoutes(c.UserContext(), filter)
	if err != nil {
		return tc.SendError(c, err)
	}
	return tc.Respond(c, fiber.StatusOK, "Delivery routes retrieved successfully", routes)
}

func (tc *TrackingController) ShowRoute(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return tc.SendError(c, err)
	}
	route, err := tc.Service.GetRoute(c.UserContext(), id)
	if err != nil {
		return tc.SendError(c, err)
	}
	return tc.Respond(c, fiber.StatusOK, "Delivery route retrieved successfully", route)
}

func (tc *TrackingController) StoreRoute(c *fiber.Ctx) error {
	var request trackingTypes.RouteRequest
	if err := tc.ParseBody(c, &request); err != nil {
		return tc.SendError(c, err)
	}
	route, err := tc.Service.CreateRoute(c.UserContext(), &request)
	if err != nil {
		return tc.SendError(c, err)
	}
	return tc.Respond(c, fiber.StatusCreated, "Delivery route created successfully", route)
}

func (tc *TrackingController) UpdateRoute(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return tc.SendError(c, err)
	}
	var request trackingTypes.RouteRequest
	if err := tc.ParseBody(c, &request); err != nil {
		return tc.SendError(c, err)
	}
	route, err := tc.Service.UpdateRoute(c.UserContext(), id, &request, c.Method() == fiber.MethodPut)
	if err != nil {
		return tc.SendError(c, err)
	}
	return tc.Respond(c, fiber.StatusOK, "Delivery route updated successfully", route)
}

func (tc *TrackingController) DestroyRoute(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return tc.SendError(c, err)
	}
	if err := tc.Service.DeleteRoute(c.UserContext(), id); err != nil {
		return tc.SendError(c, err)
	}
	return tc.NoContent(c)
}
