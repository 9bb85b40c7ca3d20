package parcel

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrackingLocation is a geolocation ping recorded against a parcel.
type TrackingLocation struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ParcelID     uint      `gorm:"not null;index:idx_tracking_locations_parcel_ts,priority:1" json:"parcel"`
	Latitude     float64   `gorm:"not null" json:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude"`
	LocationName string    `gorm:"size:255;not null" json:"location_name"`
	Status       string    `gorm:"size:50;not null" json:"status"`
	Timestamp    time.Time `gorm:"autoCreateTime;index:idx_tracking_locations_parcel_ts,priority:2,sort:desc" json:"timestamp"`
	Notes        *string   `gorm:"type:text" json:"notes"`
}

// DeliveryRoute is one leg of a parcel's planned route.
type DeliveryRoute struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	ParcelID      uint             `gorm:"not null;index" json:"parcel"`
	Parcel        *Parcel          `gorm:"foreignKey:ParcelID" json:"-"`
	RouteSequence int              `gorm:"not null" json:"route_sequence"`
	FromLocation  string           `gorm:"size:255;not null" json:"from_location"`
	ToLocation    string           `gorm:"size:255;not null" json:"to_location"`
	FromLatitude  float64          `gorm:"not null" json:"from_latitude"`
	FromLongitude float64          `gorm:"not null" json:"from_longitude"`
	ToLatitude    float64          `gorm:"not null" json:"to_latitude"`
	ToLongitude   float64          `gorm:"not null" json:"to_longitude"`
	DistanceKm    *decimal.Decimal `gorm:"type:decimal(8,2)" json:"distance_km"`
	Status        RouteStatus      `gorm:"size:50;not null;default:pending" json:"status"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
