package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-tracking/apperr"
	parcelModel "parcel-tracking/models/parcel"
	"parcel-tracking/models/user"
	reviewTypes "parcel-tracking/types/review"
	"parcel-tracking/utils"

	"gorm.io/gorm"
)

const duplicateReview = "delivery review with this parcel already exists."

// Service manages delivery reviews, one per parcel.
type Service struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Reviewer").Preload("Parcel")
}

func respond(r *parcelModel.DeliveryReview) reviewTypes.ReviewResponse {
	tracking := ""
	if r.Parcel != nil {
		tracking = r.Parcel.TrackingNumber
	}
	return reviewTypes.NewReviewResponse(r, tracking)
}

// List returns reviews filtered by parcel or reviewer and searched over
// title and comment.
func (s *Service) List(ctx context.Context, filter reviewTypes.ListFilter) ([]reviewTypes.ReviewResponse, error) {
	query := withRelations(s.DB.WithContext(ctx))
	if filter.ParcelID != nil {
		query = query.Where("parcel_id = ?", *filter.ParcelID)
	}
	if filter.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *filter.ReviewerID)
	}
	if filter.Search != "" {
		pattern := utils.ContainsPattern(filter.Search)
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(comment) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var rows []parcelModel.DeliveryReview
	err := query.Order(utils.OrderBy(filter.Ordering, "-created_at", "created_at", "rating")).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	out := make([]reviewTypes.ReviewResponse, 0, len(rows))
	for i := range rows {
		out = append(out, respond(&rows[i]))
	}
	return out, nil
}

// Get returns one review.
func (s *Service) Get(ctx context.Context, id uint) (*reviewTypes.ReviewResponse, error) {
	r, err := load(withRelations(s.DB.WithContext(ctx)), id)
	if err != nil {
		return nil, err
	}
	resp := respond(r)
	return &resp, nil
}

func load(db *gorm.DB, id uint) (*parcelModel.DeliveryReview, error) {
	var r parcelModel.DeliveryReview
	if err := db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Review not found")
		}
		return nil, fmt.Errorf("failed to load review %d: %w", id, err)
	}
	return &r, nil
}

// Create stores the reviewer's review of a parcel. The reviewer is always
// the caller.
func (s *Service) Create(ctx context.Context, req *reviewTypes.ReviewRequest, reviewer *user.User) (*reviewTypes.ReviewResponse, error) {
	if reviewer == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	if err := requireFields(req); err != nil {
		return nil, err
	}

	r := parcelModel.DeliveryReview{
		ReviewerID:     reviewer.ID,
		WouldRecommend: true,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := apply(tx, &r, req); err != nil {
			return err
		}
		if err := tx.Omit("Parcel", "Reviewer").Create(&r).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("parcel", duplicateReview)
			}
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ID)
}

// Update edits a review. full requires every writable field.
func (s *Service) Update(ctx context.Context, id uint, req *reviewTypes.ReviewRequest, full bool) (*reviewTypes.ReviewResponse, error) {
	if full {
		if err := requireFields(req); err != nil {
			return nil, err
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := load(tx, id)
		if err != nil {
			return err
		}
		if err := apply(tx, r, req); err != nil {
			return err
		}
		if err := tx.Omit("Parcel", "Reviewer").Save(r).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("parcel", duplicateReview)
			}
			return fmt.Errorf("failed to update review %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a review.
func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&parcelModel.DeliveryReview{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Review not found")
	}
	return nil
}

func requireFields(req *reviewTypes.ReviewRequest) error {
	required := []struct {
		field   string
		missing bool
	}{
		{"parcel", req.Parcel == nil},
		{"rating", req.Rating == nil},
		{"title", req.Title == nil},
		{"comment", req.Comment == nil},
		{"delivery_speed_rating", req.DeliverySpeedRating == nil},
		{"packaging_quality_rating", req.PackagingQualityRating == nil},
		{"communication_rating", req.CommunicationRating == nil},
	}
	for _, r := range required {
		if r.missing {
			return apperr.InvalidArgument(r.field, r.field+" field required")
		}
	}
	return nil
}

// apply validates and copies the supplied fields onto r. Ratings are checked
// here as well as at the request layer so no write path can store one out of
// range.
func apply(tx *gorm.DB, r *parcelModel.DeliveryReview, req *reviewTypes.ReviewRequest) error {
	ratings := []struct {
		field string
		value *int
		dest  *int
	}{
		{"rating", req.Rating, &r.Rating},
		{"delivery_speed_rating", req.DeliverySpeedRating, &r.DeliverySpeedRating},
		{"packaging_quality_rating", req.PackagingQualityRating, &r.PackagingQualityRating},
		{"communication_rating", req.CommunicationRating, &r.CommunicationRating},
	}
	for _, rt := range ratings {
		if rt.value == nil {
			continue
		}
		if !parcelModel.RatingInRange(*rt.value) {
			return apperr.InvalidArgument(rt.field, fmt.Sprintf("Ensure this value is between %d and %d.", parcelModel.MinRating, parcelModel.MaxRating))
		}
		*rt.dest = *rt.value
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return apperr.InvalidArgument("title", "title may not be blank")
		}
		r.Title = title
	}
	if req.Comment != nil {
		if strings.TrimSpace(*req.Comment) == "" {
			return apperr.InvalidArgument("comment", "comment may not be blank")
		}
		r.Comment = *req.Comment
	}
	if req.WouldRecommend != nil {
		r.WouldRecommend = *req.WouldRecommend
	}

	if req.Parcel != nil {
		var n int64
		if err := tx.Model(&parcelModel.Parcel{}).Where("id = ?", *req.Parcel).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to load parcel %d: %w", *req.Parcel, err)
		}
		if n == 0 {
			return apperr.InvalidArgument("parcel", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *req.Parcel))
		}
		var taken int64
		if err := tx.Model(&parcelModel.DeliveryReview{}).
			Where("parcel_id = ? AND id <> ?", *req.Parcel, r.ID).
			Count(&taken).Error; err != nil {
			return fmt.Errorf("failed to check existing review: %w", err)
		}
		if taken > 0 {
			return apperr.Conflict("parcel", duplicateReview)
		}
		r.ParcelID = *req.Parcel
	}
	return nil
}
