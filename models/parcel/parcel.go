package parcel

import (
	"parcel-tracking/models/organization"
	"time"

	"github.com/shopspring/decimal"
)

// Parcel is a tracked item belonging to one organization.
type Parcel struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	OrganizationID uint                      `gorm:"not null;index:idx_parcels_org_created,priority:1" json:"organization"`
	Organization   organization.Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DepartmentID   *uint                     `gorm:"index" json:"department"`
	Department     *organization.Department  `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	TrackingNumber string `gorm:"size:100;not null;uniqueIndex" json:"tracking_number"`
	ParcelType     Type   `gorm:"size:20;not null;default:parcel" json:"parcel_type"`
	Status         Status `gorm:"size:20;not null;default:pending;index" json:"status"`

	SenderName  string  `gorm:"size:255;not null" json:"sender_name"`
	SenderEmail *string `gorm:"size:254" json:"sender_email"`
	SenderPhone *string `gorm:"size:20" json:"sender_phone"`

	ReceiverName    string  `gorm:"size:255;not null" json:"receiver_name"`
	ReceiverEmail   *string `gorm:"size:254" json:"receiver_email"`
	ReceiverPhone   *string `gorm:"size:20" json:"receiver_phone"`
	ReceiverAddress *string `gorm:"type:text" json:"receiver_address"`

	Weight      *decimal.Decimal `gorm:"type:decimal(8,2)" json:"weight"`
	Description *string          `gorm:"type:text" json:"description"`
	Value       *decimal.Decimal `gorm:"type:decimal(10,2)" json:"value"`

	CurrentLocation *string  `gorm:"size:255" json:"current_location"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`

	CreatedAt   time.Time  `gorm:"autoCreateTime;index:idx_parcels_org_created,priority:2,sort:desc" json:"created_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	StatusHistory     []StatusHistory    `gorm:"foreignKey:ParcelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DeliveryHistories []DeliveryHistory  `gorm:"foreignKey:ParcelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TrackingLocations []TrackingLocation `gorm:"foreignKey:ParcelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DeliveryRoutes    []DeliveryRoute    `gorm:"foreignKey:ParcelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Review            *DeliveryReview    `gorm:"foreignKey:ParcelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
