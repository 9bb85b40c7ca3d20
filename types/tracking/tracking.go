package tracking

import (
	parcelModel "parcel-tracking/models/parcel"

	"github.com/shopspring/decimal"
)

type LocationRequest struct {
	Parcel       *uint    `json:"parcel"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	LocationName *string  `json:"location_name" validate:"omitempty,max=255"`
	Status       *string  `json:"status" validate:"omitempty,max=50"`
	Notes        *string  `json:"notes"`
}

type RouteRequest struct {
	Parcel        *uint            `json:"parcel"`
	RouteSequence *int             `json:"route_sequence"`
	FromLocation  *string          `json:"from_location" validate:"omitempty,max=255"`
	ToLocation    *string          `json:"to_location" validate:"omitempty,max=255"`
	FromLatitude  *float64         `json:"from_latitude" validate:"omitempty,min=-90,max=90"`
	FromLongitude *float64         `json:"from_longitude" validate:"omitempty,min=-180,max=180"`
	ToLatitude    *float64         `json:"to_latitude" validate:"omitempty,min=-90,max=90"`
	ToLongitude   *float64         `json:"to_longitude" validate:"omitempty,min=-180,max=180"`
	DistanceKm    *decimal.Decimal `json:"distance_km"`
	Status        *string          `json:"status"`
}

type LocationFilter struct {
	ParcelID *uint
	Status   string
	Ordering string
}

type RouteFilter struct {
	ParcelID *uint
	Status   string
	Ordering string
}

// RouteResponse adds the parcel's tracking number to a route leg.
type RouteResponse struct {
	parcelModel.DeliveryRoute
	ParcelTracking string `json:"parcel_tracking"`
}

// NewRouteResponse expects Parcel to be preloaded, or trackingNumber given.
func NewRouteResponse(r *parcelModel.DeliveryRoute, trackingNumber string) RouteResponse {
	if trackingNumber == "" && r.Parcel != nil {
		trackingNumber = r.Parcel.TrackingNumber
	}
	return RouteResponse{DeliveryRoute: *r, ParcelTracking: trackingNumber}
}
