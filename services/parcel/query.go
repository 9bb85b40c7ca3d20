package parcel

import (
	"context"
	"fmt"

	parcelModel "parcel-tracking/models/parcel"
	parcelTypes "parcel-tracking/types/parcel"
	"parcel-tracking/utils"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

const (
	trackingNumberPrefix   = "TRK-"
	maxTrackingNumberTries = 5
)

var orderingFields = []string{"created_at", "tracking_number"}

// List returns one page of parcels matching filter in list projection.
func (s *Service) List(ctx context.Context, filter parcelTypes.ListFilter) (*parcelTypes.Page, error) {
	query := s.DB.WithContext(ctx).Model(&parcelModel.Parcel{})

	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ParcelType != "" {
		query = query.Where("parcel_type = ?", filter.ParcelType)
	}
	if filter.Search != "" {
		pattern := utils.ContainsPattern(filter.Search)
		query = query.Where(
			`LOWER(tracking_number) LIKE ? ESCAPE '\' OR LOWER(sender_name) LIKE ? ESCAPE '\' OR LOWER(receiver_name) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}
	if filter.CreatedDate != nil {
		start, end := utils.DayWindow(*filter.CreatedDate)
		query = query.Where("created_at BETWEEN ? AND ?", start, end)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count parcels: %w", err)
	}

	offset, limit := utils.Paginate(filter.Page, filter.PageSize)
	var rows []parcelModel.Parcel
	err := query.Preload("Department").
		Order(utils.OrderBy(filter.Ordering, "-created_at", orderingFields...)).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list parcels: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	// Unpaginated lists report the whole result as one page.
	pageSize := limit
	if pageSize < 0 {
		pageSize = len(rows)
	}
	return &parcelTypes.Page{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  parcelTypes.NewListItems(rows),
	}, nil
}

// GenerateTrackingNumber proposes a tracking number that is not yet in use.
// ULIDs sort by creation time, so generated numbers also do.
func (s *Service) GenerateTrackingNumber(ctx context.Context) (string, error) {
	db := s.DB.WithContext(ctx)
	for i := 0; i < maxTrackingNumberTries; i++ {
		candidate := trackingNumberPrefix + ulid.Make().String()

		var taken int64
		if err := db.Model(&parcelModel.Parcel{}).Where("tracking_number = ?", candidate).Count(&taken).Error; err != nil {
			return "", fmt.Errorf("failed to check tracking number: %w", err)
		}
		if taken == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a free tracking number after %d attempts", maxTrackingNumberTries)
}
