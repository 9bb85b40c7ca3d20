package organization

import (
	"parcel-tracking/models/user"
	"time"
)

// Organization is the tenant that owns departments and parcels.
type Organization struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	AdminID     *uint      `gorm:"index" json:"admin_id"`
	Admin       *user.User `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"admin,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Department subdivides an organization. Names are unique per organization.
type Department struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrganizationID uint         `gorm:"not null;uniqueIndex:idx_departments_org_name,priority:1" json:"organization"`
	Organization   Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name           string       `gorm:"size:255;not null;uniqueIndex:idx_departments_org_name,priority:2" json:"name"`
	Description    *string      `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
