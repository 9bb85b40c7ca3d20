package parcel

import (
	"strconv"

	"parcel-tracking/apperr"
	"parcel-tracking/controllers/base"
	"parcel-tracking/logger"
	"parcel-tracking/middleware"
	parcelService "parcel-tracking/services/parcel"
	parcelTypes "parcel-tracking/types/parcel"
	"parcel-tracking/utils"

	"github.com/gofiber/fiber/v2"
)

// ParcelController handles parcel related HTTP requests
type ParcelController struct {
	base.Controller
	Service *parcelService.Service
}

// NewParcelController creates a new parcel controller
func NewParcelController(service *parcelService.Service, asyncLogger *logger.AsyncLogger) *ParcelController {
	return &ParcelController{
		Controller: base.Controller{Logger: asyncLogger},
		Service:    service,
	}
}

// Index lists parcels with filters, search, ordering and pagination.
func (pc *ParcelController) Index(c *fiber.Ctx) error {
	filter, err := listFilter(c)
	if err != nil {
		return pc.SendError(c, err)
	}

	page, err := pc.Service.List(c.UserContext(), filter)
	if err != nil {
		return pc.SendError(c, err)
	}
	return pc.Respond(c, fiber.StatusOK, "Parcels retrieved successfully", page)
}

func listFilter(c *fiber.Ctx) (parcelTypes.ListFilter, error) {
	filter := parcelTypes.ListFilter{
		Status:     c.Query("status"),
		ParcelType: c.Query("parcel_type"),
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
	}

	var err error
	if filter.OrganizationID, err = base.QueryUint(c, "organization"); err != nil {
		return filter, err
	}
	if filter.DepartmentID, err = base.QueryUint(c, "department"); err != nil {
		return filter, err
	}
	if raw := c.Query("created_date"); raw != "" {
		day, err := utils.ParseDate(raw)
		if err != nil {
			return filter, apperr.InvalidArgument("created_date", "Enter a valid date.")
		}
		filter.CreatedDate = &day
	}
	for key, dest := range map[string]*int{"page": &filter.Page, "page_size": &filter.PageSize} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, apperr.InvalidArgument(key, "Enter a valid integer.")
		}
		*dest = n
	}
	return filter, nil
}

// Show returns the detail projection of one parcel.
func (pc *ParcelController) Show(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return pc.SendError(c, err)
	}
	detail, err := pc.Service.Get(c.UserContext(), id)
	if err != nil {
		return pc.SendError(c, err)
	}
	return pc.Respond(c, fiber.StatusOK, "Parcel retrieved successfully", detail)
}

// Store creates a parcel. An authenticated caller is linked as its sender.
func (pc *ParcelController) Store(c *fiber.Ctx) error {
	var request parcelTypes.WriteRequest
	if err := pc.ParseBody(c, &request); err != nil {
		return pc.SendError(c, err)
	}

	detail, err := pc.Service.Create(c.UserContext(), &request, middleware.CurrentUser(c))
	if err != nil {
		return pc.SendError(c, err)
	}
	return pc.Respond(c, fiber.StatusCreated, "Parcel created successfully", detail)
}

// Update handles both PUT and PATCH. PATCH only touches supplied fields.
func (pc *ParcelController) Update(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return pc.SendError(c, err)
	}
	var request parcelTypes.WriteRequest
	if err := pc.ParseBody(c, &request); err != nil {
		return pc.SendError(c, err)
	}

	mode := parcelService.Full
	if c.Method() == fiber.MethodPatch {
		mode = parcelService.Partial
	}
	detail, err := pc.Service.Update(c.UserContext(), id, &request, mode)
	if err != nil {
		return pc.SendError(c, err)
	}
	return pc.Respond(c, fiber.StatusOK, "Parcel updated successfully", detail)
}

func (pc *ParcelController) Destroy(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return pc.SendError(c, err)
	}
	if err := pc.Service.Delete(c.UserContext(), id); err != nil {
		return pc.SendError(c, err)
	}
	return pc.NoContent(c)
}

// SearchByBarcode looks a parcel up by its exact tracking number.
func (pc *ParcelController) SearchByBarcode(c *fiber.Ctx) error {
	detail, err := pc.Service.FindByTrackingNumber(c.UserContext(), c.Query("tracking_number"))
	if err != nil {
		return pc.SendError(c, err)
	}
	return pc.Respond(c, fiber.StatusOK, "Parcel retrieved successfully", detail)
}

// UpdateStatus moves a parcel to a new status, recording history and
// notifying the caller.
func (pc *ParcelController) UpdateStatus(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return pc.SendError(c, err)
	}
	var request parcelTypes.StatusUpdateRequest
	if len(c.Body()) > 0 {
		if err := pc.ParseBody(c, &request); err != nil {
			return pc.SendError(c, err)
		}
	}

	detail, err := pc.Service.TransitionStatus(c.UserContext(), id, request.Status, middleware.CurrentUser(c), request.Notes)
	if err != nil {
		return pc.SendError(c, err)
	}
	return pc.Respond(c, fiber.StatusOK, "Parcel status updated successfully", detail)
}

// MyParcels lists parcels the caller sent or receives.
func (pc *ParcelController) MyParcels(c *fiber.Ctx) error {
	items, err := pc.Service.ListForUser(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return pc.SendError(c, err)
	}
	return pc.Respond(c, fiber.StatusOK, "Parcels retrieved successfully", items)
}

// GenerateTrackingNumber proposes an unused tracking number.
func (pc *ParcelController) GenerateTrackingNumber(c *fiber.Ctx) error {
	tn, err := pc.Service.GenerateTrackingNumber(c.UserContext())
	if err != nil {
		return pc.SendError(c, err)
	}
	return pc.Respond(c, fiber.StatusOK, "Tracking number generated", fiber.Map{"tracking_number": tn})
}
