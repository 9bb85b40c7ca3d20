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

// ListRoutes returns route legs ordered by sequence unless ordered otherwise.
func (s *Service) ListRoutes(ctx context.Context, filter trackingTypes.RouteFilter) ([]trackingTypes.RouteResponse, error) {
	query := s.DB.WithContext(ctx).Preload("Parcel")
	if filter.ParcelID != nil {
		query = query.Where("parcel_id = ?", *filter.ParcelID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var rows []parcelModel.DeliveryRoute
	order := utils.OrderBy(filter.Ordering, "route_sequence", "route_sequence", "created_at")
	if err := query.Order(order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list delivery routes: %w", err)
	}
	out := make([]trackingTypes.RouteResponse, 0, len(rows))
	for i := range rows {
		out = append(out, trackingTypes.NewRouteResponse(&rows[i], ""))
	}
	return out, nil
}

func (s *Service) GetRoute(ctx context.Context, id uint) (*trackingTypes.RouteResponse, error) {
	r, err := getRoute(s.DB.WithContext(ctx).Preload("Parcel"), id)
	if err != nil {
		return nil, err
	}
	resp := trackingTypes.NewRouteResponse(r, "")
	return &resp, nil
}

func getRoute(db *gorm.DB, id uint) (*parcelModel.DeliveryRoute, error) {
	var r parcelModel.DeliveryRoute
	if err := db.First(&r, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Delivery route not found")
		}
		return nil, fmt.Errorf("failed to load delivery route %d: %w", id, err)
	}
	return &r, nil
}

// CreateRoute adds a leg to a parcel's route. Status defaults to pending.
func (s *Service) CreateRoute(ctx context.Context, req *trackingTypes.RouteRequest) (*trackingTypes.RouteResponse, error) {
	if err := requireRoute(req); err != nil {
		return nil, err
	}
	r := parcelModel.DeliveryRoute{Status: parcelModel.RouteStatusPending}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyRoute(tx, &r, req); err != nil {
			return err
		}
		if err := tx.Omit("Parcel").Create(&r).Error; err != nil {
			return fmt.Errorf("failed to create delivery route: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRoute(ctx, r.ID)
}

// UpdateRoute edits a route leg. full requires every writable field.
func (s *Service) UpdateRoute(ctx context.Context, id uint, req *trackingTypes.RouteRequest, full bool) (*trackingTypes.RouteResponse, error) {
	if full {
		if err := requireRoute(req); err != nil {
			return nil, err
		}
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := getRoute(tx, id)
		if err != nil {
			return err
		}
		if err := applyRoute(tx, r, req); err != nil {
			return err
		}
		if err := tx.Omit("Parcel").Save(r).Error; err != nil {
			return fmt.Errorf("failed to update delivery route %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRoute(ctx, id)
}

func (s *Service) DeleteRoute(ctx context.Context, id uint) error {
	return deleteByID(ctx, s.DB, &parcelModel.DeliveryRoute{}, id, "Delivery route")
}

func requireRoute(req *trackingTypes.RouteRequest) error {
	return requireAll([]requiredField{
		{"parcel", req.Parcel == nil},
		{"route_sequence", req.RouteSequence == nil},
		{"from_location", req.FromLocation == nil},
		{"to_location", req.ToLocation == nil},
		{"from_latitude", req.FromLatitude == nil},
		{"from_longitude", req.FromLongitude == nil},
		{"to_latitude", req.ToLatitude == nil},
		{"to_longitude", req.ToLongitude == nil},
	})
}

func applyRoute(tx *gorm.DB, r *parcelModel.DeliveryRoute, req *trackingTypes.RouteRequest) error {
	if req.Parcel != nil {
		if err := ensureParcel(tx, *req.Parcel); err != nil {
			return err
		}
		r.ParcelID = *req.Parcel
		r.Parcel = nil
	}
	if req.RouteSequence != nil {
		if *req.RouteSequence < 0 {
			return apperr.InvalidArgument("route_sequence", "Ensure this value is greater than or equal to 0.")
		}
		r.RouteSequence = *req.RouteSequence
	}
	if err := nonBlank("from_location", req.FromLocation, &r.FromLocation); err != nil {
		return err
	}
	if err := nonBlank("to_location", req.ToLocation, &r.ToLocation); err != nil {
		return err
	}
	for _, c := range []struct {
		value *float64
		dest  *float64
	}{
		{req.FromLatitude, &r.FromLatitude},
		{req.FromLongitude, &r.FromLongitude},
		{req.ToLatitude, &r.ToLatitude},
		{req.ToLongitude, &r.ToLongitude},
	} {
		if c.value != nil {
			*c.dest = *c.value
		}
	}
	if req.DistanceKm != nil {
		if req.DistanceKm.IsNegative() {
			return apperr.InvalidArgument("distance_km", "Ensure this value is greater than or equal to 0.")
		}
		d := req.DistanceKm.Round(2)
		r.DistanceKm = &d
	}
	if req.Status != nil {
		status := parcelModel.RouteStatus(*req.Status)
		if !status.IsValid() {
			return apperr.InvalidArgument("status", fmt.Sprintf("\"%s\" is not a valid choice.", *req.Status))
		}
		r.Status = status
	}
	return nil
}
