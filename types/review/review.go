package review

import (
	parcelModel "parcel-tracking/models/parcel"
	"time"
)

// ReviewRequest is the writable shape of a delivery review. The reviewer is
// never accepted from the client.
type ReviewRequest struct {
	Parcel                 *uint   `json:"parcel"`
	Rating                 *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Title                  *string `json:"title" validate:"omitempty,max=255"`
	Comment                *string `json:"comment"`
	DeliverySpeedRating    *int    `json:"delivery_speed_rating" validate:"omitempty,min=1,max=5"`
	PackagingQualityRating *int    `json:"packaging_quality_rating" validate:"omitempty,min=1,max=5"`
	CommunicationRating    *int    `json:"communication_rating" validate:"omitempty,min=1,max=5"`
	WouldRecommend         *bool   `json:"would_recommend"`
}

type ListFilter struct {
	ParcelID   *uint
	ReviewerID *uint
	Search     string
	Ordering   string
}

type ReviewResponse struct {
	ID                     uint      `json:"id"`
	Parcel                 uint      `json:"parcel"`
	ParcelTracking         string    `json:"parcel_tracking"`
	Reviewer               uint      `json:"reviewer"`
	ReviewerUsername       string    `json:"reviewer_username"`
	Rating                 int       `json:"rating"`
	Title                  string    `json:"title"`
	Comment                string    `json:"comment"`
	DeliverySpeedRating    int       `json:"delivery_speed_rating"`
	PackagingQualityRating int       `json:"packaging_quality_rating"`
	CommunicationRating    int       `json:"communication_rating"`
	WouldRecommend         bool      `json:"would_recommend"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NewReviewResponse expects Reviewer to be preloaded. trackingNumber is passed
// separately because the parcel is usually already in hand.
func NewReviewResponse(r *parcelModel.DeliveryReview, trackingNumber string) ReviewResponse {
	return ReviewResponse{
		ID:                     r.ID,
		Parcel:                 r.ParcelID,
		ParcelTracking:         trackingNumber,
		Reviewer:               r.ReviewerID,
		ReviewerUsername:       r.Reviewer.Username,
		Rating:                 r.Rating,
		Title:                  r.Title,
		Comment:                r.Comment,
		DeliverySpeedRating:    r.DeliverySpeedRating,
		PackagingQualityRating: r.PackagingQualityRating,
		CommunicationRating:    r.CommunicationRating,
		WouldRecommend:         r.WouldRecommend,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}
