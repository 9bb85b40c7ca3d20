package tracking

import (
	"context"
	"fmt"

	"parcel-tracking/apperr"
	parcelModel "parcel-tracking/models/parcel"
	trackingTypes "parcel-tracking/types/tracking"
	"parcel-tracking/utils"

	"gorm.io/gorm"
)

// ListLocations returns location pings, newest first unless ordered otherwise.
func (s *Service) ListLocations(ctx context.Context, filter trackingTypes.LocationFilter) ([]parcelModel.TrackingLocation, error) {
	query := s.DB.WithContext(ctx).Model(&parcelModel.TrackingLocation{})
	if filter.ParcelID != nil {
		query = query.Where("parcel_id = ?", *filter.ParcelID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	rows := []parcelModel.TrackingLocation{}
	if err := query.Order(utils.OrderBy(filter.Ordering, "-timestamp", "timestamp")).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tracking locations: %w", err)
	}
	return rows, nil
}

func (s *Service) GetLocation(ctx context.Context, id uint) (*parcelModel.TrackingLocation, error) {
	return getLocation(s.DB.WithContext(ctx), id)
}

func getLocation(db *gorm.DB, id uint) (*parcelModel.TrackingLocation, error) {
	var loc parcelModel.TrackingLocation
	if err := db.First(&loc, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Tracking location not found")
		}
		return nil, fmt.Errorf("failed to load tracking location %d: %w", id, err)
	}
	return &loc, nil
}

// CreateLocation records a location ping. The timestamp is set by the store.
func (s *Service) CreateLocation(ctx context.Context, req *trackingTypes.LocationRequest) (*parcelModel.TrackingLocation, error) {
	if err := requireLocation(req); err != nil {
		return nil, err
	}
	var loc parcelModel.TrackingLocation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyLocation(tx, &loc, req); err != nil {
			return err
		}
		if err := tx.Create(&loc).Error; err != nil {
			return fmt.Errorf("failed to create tracking location: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// UpdateLocation edits a location ping. full requires every writable field.
func (s *Service) UpdateLocation(ctx context.Context, id uint, req *trackingTypes.LocationRequest, full bool) (*parcelModel.TrackingLocation, error) {
	if full {
		if err := requireLocation(req); err != nil {
			return nil, err
		}
	}
	var loc *parcelModel.TrackingLocation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if loc, err = getLocation(tx, id); err != nil {
			return err
		}
		if err := applyLocation(tx, loc, req); err != nil {
			return err
		}
		if err := tx.Save(loc).Error; err != nil {
			return fmt.Errorf("failed to update tracking location %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *Service) DeleteLocation(ctx context.Context, id uint) error {
	return deleteByID(ctx, s.DB, &parcelModel.TrackingLocation{}, id, "Tracking location")
}

func requireLocation(req *trackingTypes.LocationRequest) error {
	return requireAll([]requiredField{
		{"parcel", req.Parcel == nil},
		{"latitude", req.Latitude == nil},
		{"longitude", req.Longitude == nil},
		{"location_name", req.LocationName == nil},
		{"status", req.Status == nil},
	})
}

func applyLocation(tx *gorm.DB, loc *parcelModel.TrackingLocation, req *trackingTypes.LocationRequest) error {
	if req.Parcel != nil {
		if err := ensureParcel(tx, *req.Parcel); err != nil {
			return err
		}
		loc.ParcelID = *req.Parcel
	}
	if req.Latitude != nil {
		loc.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		loc.Longitude = *req.Longitude
	}
	if err := nonBlank("location_name", req.LocationName, &loc.LocationName); err != nil {
		return err
	}
	if err := nonBlank("status", req.Status, &loc.Status); err != nil {
		return err
	}
	if req.Notes != nil {
		loc.Notes = req.Notes
	}
	return nil
}
