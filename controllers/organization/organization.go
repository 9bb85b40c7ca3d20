package organization

import (
	"parcel-tracking/controllers/base"
	"parcel-tracking/logger"
	"parcel-tracking/middleware"
	orgService "parcel-tracking/services/organization"
	orgTypes "parcel-tracking/types/organization"

	"github.com/gofiber/fiber/v2"
)

// OrganizationController handles organization and department HTTP requests
type OrganizationController struct {
	base.Controller
	Service *orgService.Service
}

// NewOrganizationController creates a new organization controller
func NewOrganizationController(service *orgService.Service, asyncLogger *logger.AsyncLogger) *OrganizationController {
	return &OrganizationController{
		Controller: base.Controller{Logger: asyncLogger},
		Service:    service,
	}
}

func (oc *OrganizationController) Index(c *fiber.Ctx) error {
	filter := orgTypes.ListFilter{
		Name:   c.Query("name"),
		Search: c.Query("search"),
	}
	var err error
	if filter.ID, err = base.QueryUint(c, "id"); err != nil {
		return oc.SendError(c, err)
	}

	orgs, err := oc.Service.List(c.UserContext(), filter)
	if err != nil {
		return oc.SendError(c, err)
	}
	return oc.Respond(c, fiber.StatusOK, "Organizations retrieved successfully", orgs)
}

func (oc *OrganizationController) Show(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return oc.SendError(c, err)
	}
	org, err := oc.Service.Get(c.UserContext(), id)
	if err != nil {
		return oc.SendError(c, err)
	}
	return oc.Respond(c, fiber.StatusOK, "Organization retrieved successfully", org)
}

// Store creates an organization administered by the caller.
func (oc *OrganizationController) Store(c *fiber.Ctx) error {
	var request orgTypes.OrganizationRequest
	if err := oc.ParseBody(c, &request); err != nil {
		return oc.SendError(c, err)
	}
	org, err := oc.Service.Create(c.UserContext(), &request, middleware.CurrentUser(c))
	if err != nil {
		return oc.SendError(c, err)
	}
	return oc.Respond(c, fiber.StatusCreated, "Organization created successfully", org)
}

func (oc *OrganizationController) Update(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return oc.SendError(c, err)
	}
	var request orgTypes.OrganizationRequest
	if err := oc.ParseBody(c, &request); err != nil {
		return oc.SendError(c, err)
	}
	org, err := oc.Service.Update(c.UserContext(), id, &request, c.Method() == fiber.MethodPut)
	if err != nil {
		return oc.SendError(c, err)
	}
	return oc.Respond(c, fiber.StatusOK, "Organization updated successfully", org)
}

func (oc *OrganizationController) Destroy(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return oc.SendError(c, err)
	}
	if err := oc.Service.Delete(c.UserContext(), id); err != nil {
		return oc.SendError(c, err)
	}
	return oc.NoContent(c)
}

// Statistics reports parcel counts per status for one organization.
func (oc *OrganizationController) Statistics(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return oc.SendError(c, err)
	}
	stats, err := oc.Service.Statistics(c.UserContext(), id)
	if err != nil {
		return oc.SendError(c, err)
	}
	return oc.Respond(c, fiber.StatusOK, "Statistics retrieved successfully", stats)
}
