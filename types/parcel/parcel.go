package parcel

import (
	parcelModel "parcel-tracking/models/parcel"
	"parcel-tracking/types/history"
	"parcel-tracking/types/review"
	"parcel-tracking/types/tracking"
	"time"

	"github.com/shopspring/decimal"
)

// WriteRequest is the writable shape of a parcel. A nil field means "not
// supplied": create and PUT require the mandatory ones, PATCH leaves absent
// fields untouched.
type WriteRequest struct {
	Organization     *uint            `json:"organization"`
	Department       *uint            `json:"department"`
	TrackingNumber   *string          `json:"tracking_number" validate:"omitempty,max=100"`
	ParcelType       *string          `json:"parcel_type"`
	Status           *string          `json:"status"`
	SenderName       *string          `json:"sender_name" validate:"omitempty,max=255"`
	SenderEmail      *string          `json:"sender_email" validate:"omitempty,max=254,email_or_blank"`
	SenderPhone      *string          `json:"sender_phone" validate:"omitempty,max=20"`
	ReceiverName     *string          `json:"receiver_name" validate:"omitempty,max=255"`
	ReceiverEmail    *string          `json:"receiver_email" validate:"omitempty,max=254,email_or_blank"`
	ReceiverPhone    *string          `json:"receiver_phone" validate:"omitempty,max=20"`
	ReceiverAddress  *string          `json:"receiver_address"`
	ReceiverUserUUID *string          `json:"receiver_user_uuid" validate:"omitempty,uuid"`
	Weight           *decimal.Decimal `json:"weight"`
	Description      *string          `json:"description"`
	Value            *decimal.Decimal `json:"value"`
	CurrentLocation  *string          `json:"current_location" validate:"omitempty,max=255"`
	Latitude         *float64         `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude        *float64         `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

// StatusUpdateRequest is the body of POST /parcels/:id/update_status.
type StatusUpdateRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// ListFilter carries the query parameters accepted by the parcel list.
type ListFilter struct {
	OrganizationID *uint
	DepartmentID   *uint
	Status         string
	ParcelType     string
	Search         string
	Ordering       string
	CreatedDate    *time.Time
	Page           int
	PageSize       int
}

// ListItem is the compact parcel projection used by list endpoints.
type ListItem struct {
	ID              uint               `json:"id"`
	TrackingNumber  string             `json:"tracking_number"`
	ParcelType      parcelModel.Type   `json:"parcel_type"`
	TypeDisplay     string             `json:"type_display"`
	Status          parcelModel.Status `json:"status"`
	StatusDisplay   string             `json:"status_display"`
	SenderName      string             `json:"sender_name"`
	ReceiverName    string             `json:"receiver_name"`
	CurrentLocation *string            `json:"current_location"`
	CreatedAt       time.Time          `json:"created_at"`
	DeliveredAt     *time.Time         `json:"delivered_at"`
	Department      *uint              `json:"department"`
	DepartmentName  *string            `json:"department_name"`
}

// NewListItem reads department_name from a preloaded Department, if any.
func NewListItem(p *parcelModel.Parcel) ListItem {
	item := ListItem{
		ID:              p.ID,
		TrackingNumber:  p.TrackingNumber,
		ParcelType:      p.ParcelType,
		TypeDisplay:     p.ParcelType.Label(),
		Status:          p.Status,
		StatusDisplay:   p.Status.Label(),
		SenderName:      p.SenderName,
		ReceiverName:    p.ReceiverName,
		CurrentLocation: p.CurrentLocation,
		CreatedAt:       p.CreatedAt,
		DeliveredAt:     p.DeliveredAt,
		Department:      p.DepartmentID,
	}
	if p.Department != nil {
		name := p.Department.Name
		item.DepartmentName = &name
	}
	return item
}

func NewListItems(rows []parcelModel.Parcel) []ListItem {
	out := make([]ListItem, 0, len(rows))
	for i := range rows {
		out = append(out, NewListItem(&rows[i]))
	}
	return out
}

// Detail is the full parcel projection, nested collections included.
type Detail struct {
	parcelModel.Parcel
	OrganizationName string                          `json:"organization_name"`
	DepartmentName   *string                         `json:"department_name"`
	StatusDisplay    string                          `json:"status_display"`
	TypeDisplay      string                          `json:"type_display"`
	History          []history.StatusHistoryResponse `json:"status_history"`
	Locations        []parcelModel.TrackingLocation  `json:"tracking_locations"`
	Routes           []tracking.RouteResponse        `json:"delivery_routes"`
	ReviewView       *review.ReviewResponse          `json:"review"`
}

// NewDetail expects Organization, Department, StatusHistory.ChangedBy,
// TrackingLocations, DeliveryRoutes and Review.Reviewer to be preloaded in
// display order.
func NewDetail(p *parcelModel.Parcel) Detail {
	d := Detail{
		Parcel:           *p,
		OrganizationName: p.Organization.Name,
		StatusDisplay:    p.Status.Label(),
		TypeDisplay:      p.ParcelType.Label(),
		History:          history.NewStatusHistoryList(p.StatusHistory),
		Locations:        p.TrackingLocations,
		Routes:           make([]tracking.RouteResponse, 0, len(p.DeliveryRoutes)),
	}
	if d.Locations == nil {
		d.Locations = []parcelModel.TrackingLocation{}
	}
	if p.Department != nil {
		name := p.Department.Name
		d.DepartmentName = &name
	}
	for i := range p.DeliveryRoutes {
		d.Routes = append(d.Routes, tracking.NewRouteResponse(&p.DeliveryRoutes[i], p.TrackingNumber))
	}
	if p.Review != nil {
		r := review.NewReviewResponse(p.Review, p.TrackingNumber)
		d.ReviewView = &r
	}
	return d
}

// Page wraps a list result with its pagination metadata.
type Page struct {
	Count    int64      `json:"count"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Results  []ListItem `json:"results"`
}
