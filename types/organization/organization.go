package organization

import (
	orgModel "parcel-tracking/models/organization"
	"parcel-tracking/models/user"
	"time"
)

type OrganizationRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

type DepartmentRequest struct {
	Organization *uint   `json:"organization"`
	Name         *string `json:"name" validate:"omitempty,max=255"`
	Description  *string `json:"description"`
}

// ListFilter carries the query parameters accepted by organization lists.
type ListFilter struct {
	ID     *uint
	Name   string
	Search string
}

type DepartmentListFilter struct {
	OrganizationID *uint
	Name           string
	Search         string
}

type UserSummary struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
}

func NewUserSummary(u *user.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type OrganizationResponse struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Admin       *UserSummary `json:"admin"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func NewOrganizationResponse(o *orgModel.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Admin:       NewUserSummary(o.Admin),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

type DepartmentResponse struct {
	ID               uint      `json:"id"`
	Organization     uint      `json:"organization"`
	OrganizationName string    `json:"organization_name"`
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewDepartmentResponse expects Organization to be preloaded.
func NewDepartmentResponse(d *orgModel.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:               d.ID,
		Organization:     d.OrganizationID,
		OrganizationName: d.Organization.Name,
		Name:             d.Name,
		Description:      d.Description,
		CreatedAt:        d.CreatedAt,
	}
}

// Statistics counts an organization's parcels by status.
type Statistics struct {
	TotalParcels int64 `json:"total_parcels"`
	Delivered    int64 `json:"delivered"`
	InTransit    int64 `json:"in_transit"`
	Pending      int64 `json:"pending"`
	Lost         int64 `json:"lost"`
}
