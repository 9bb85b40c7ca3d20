package organization

import (
	"parcel-tracking/controllers/base"
	orgTypes "parcel-tracking/types/organization"

	"github.com/gofiber/fiber/v2"
)

func (oc *OrganizationController) IndexDepartments(c *fiber.Ctx) error {
	filter := orgTypes.DepartmentListFilter{
		Name:   c.Query("name"),
		Search: c.Query("search"),
	}
	var err error
	if filter.OrganizationID, err = base.QueryUint(c, "organization"); err != nil {
		return oc.SendError(c, err)
	}

	departments, err := oc.Service.ListDepartments(c.UserContext(), filter)
	if err != nil {
		return oc.SendError(c, err)
	}
	return oc.Respond(c, fiber.StatusOK, "Departments retrieved successfully", departments)
}

func (oc *OrganizationController) ShowDepartment(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return oc.SendError(c, err)
	}
	dept, err := oc.Service.GetDepartment(c.UserContext(), id)
	if err != nil {
		return oc.SendError(c, err)
	}
	return oc.Respond(c, fiber.StatusOK, "Department retrieved successfully", dept)
}

func (oc *OrganizationController) StoreDepartment(c *fiber.Ctx) error {
	var request orgTypes.DepartmentRequest
	if err := oc.ParseBody(c, &request); err != nil {
		return oc.SendError(c, err)
	}
	dept, err := oc.Service.CreateDepartment(c.UserContext(), &request)
	if err != nil {
		return oc.SendError(c, err)
	}
	return oc.Respond(c, fiber.StatusCreated, "Department created successfully", dept)
}

func (oc *OrganizationController) UpdateDepartment(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return oc.SendError(c, err)
	}
	var request orgTypes.DepartmentRequest
	if err := oc.ParseBody(c, &request); err != nil {
		return oc.SendError(c, err)
	}
	dept, err := oc.Service.UpdateDepartment(c.UserContext(), id, &request, c.Method() == fiber.MethodPut)
	if err != nil {
		return oc.SendError(c, err)
	}
	return oc.Respond(c, fiber.StatusOK, "Department updated successfully", dept)
}

func (oc *OrganizationController) DestroyDepartment(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return oc.SendError(c, err)
	}
	if err := oc.Service.DeleteDepartment(c.UserContext(), id); err != nil {
		return oc.SendError(c, err)
	}
	return oc.NoContent(c)
}
