package parcel

import (
	"parcel-tracking/models/user"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// DeliveryReview rates a parcel's delivery. A parcel has at most one.
type DeliveryReview struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ParcelID   uint      `gorm:"not null;uniqueIndex" json:"parcel"`
	Parcel     *Parcel   `gorm:"foreignKey:ParcelID" json:"-"`
	ReviewerID uint      `gorm:"not null;index" json:"reviewer"`
	Reviewer   user.User `gorm:"foreignKey:ReviewerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Rating  int    `gorm:"not null" json:"rating"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Comment string `gorm:"type:text;not null" json:"comment"`

	DeliverySpeedRating    int  `gorm:"not null" json:"delivery_speed_rating"`
	PackagingQualityRating int  `gorm:"not null" json:"packaging_quality_rating"`
	CommunicationRating    int  `gorm:"not null" json:"communication_rating"`
	WouldRecommend         bool `gorm:"not null" json:"would_recommend"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RatingInRange reports whether r lies in the closed rating interval.
func RatingInRange(r int) bool {
	return r >= MinRating && r <= MaxRating
}
