package notification

import (
	"parcel-tracking/models/parcel"
	"parcel-tracking/models/user"
	"time"
)

// Notification is a message addressed to one user. Rows emitted by anonymous
// status changes have no owner and are never listed.
type Notification struct {
	ID       uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   *uint          `gorm:"index:idx_notifications_user_read,priority:1" json:"user"`
	User     *user.User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ParcelID *uint          `gorm:"index" json:"parcel"`
	Parcel   *parcel.Parcel `gorm:"foreignKey:ParcelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Title    string         `gorm:"size:255;not null" json:"title"`
	Message  string         `gorm:"type:text;not null" json:"message"`
	IsRead   bool           `gorm:"not null;default:false;index:idx_notifications_user_read,priority:2" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
