package parcel

import (
	"parcel-tracking/models/user"
	"time"
)

// StatusHistory is one append-only entry of a parcel's status log.
type StatusHistory struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ParcelID       uint       `gorm:"not null;index" json:"parcel"`
	PreviousStatus Status     `gorm:"size:20;not null" json:"previous_status"`
	NewStatus      Status     `gorm:"size:20;not null" json:"new_status"`
	ChangedByID    *uint      `gorm:"index" json:"changed_by"`
	ChangedBy      *user.User `gorm:"foreignKey:ChangedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Notes          *string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (StatusHistory) TableName() string {
	return "parcel_status_histories"
}

// DeliveryHistory links a user to a parcel they send or receive.
type DeliveryHistory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_delivery_histories_user_ts,priority:1" json:"user"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ParcelID  uint      `gorm:"not null;index" json:"parcel"`
	Role      Role      `gorm:"size:20;not null" json:"role"`
	Timestamp time.Time `gorm:"autoCreateTime;index:idx_delivery_histories_user_ts,priority:2,sort:desc" json:"timestamp"`
}

func (DeliveryHistory) TableName() string {
	return "parcel_delivery_histories"
}
