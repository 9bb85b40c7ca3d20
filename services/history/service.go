package history

import (
	"context"
	"errors"
	"fmt"

	"parcel-tracking/apperr"
	parcelModel "parcel-tracking/models/parcel"
	"parcel-tracking/models/user"
	historyTypes "parcel-tracking/types/history"
	"parcel-tracking/utils"

	"gorm.io/gorm"
)

// Service is the read side of status and delivery history. Status history
// rows are only written by parcel status transitions.
type Service struct {
	DB *gorm.DB
}

func NewHistoryService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ListStatusHistory returns status changes, newest first.
func (s *Service) ListStatusHistory(ctx context.Context, filter historyTypes.StatusHistoryFilter) ([]historyTypes.StatusHistoryResponse, error) {
	query := s.DB.WithContext(ctx).Preload("ChangedBy")
	if filter.ParcelID != nil {
		query = query.Where("parcel_id = ?", *filter.ParcelID)
	}

	var rows []parcelModel.StatusHistory
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}
	return historyTypes.NewStatusHistoryList(rows), nil
}

func (s *Service) GetStatusHistory(ctx context.Context, id uint) (*historyTypes.StatusHistoryResponse, error) {
	var h parcelModel.StatusHistory
	if err := s.DB.WithContext(ctx).Preload("ChangedBy").First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Status history entry not found")
		}
		return nil, fmt.Errorf("failed to load status history %d: %w", id, err)
	}
	resp := historyTypes.NewStatusHistoryResponse(&h)
	return &resp, nil
}

// ListDeliveryHistory returns the caller's sender/receiver links. An
// anonymous caller sees nothing.
func (s *Service) ListDeliveryHistory(ctx context.Context, actor *user.User, filter historyTypes.DeliveryHistoryFilter) ([]historyTypes.DeliveryHistoryResponse, error) {
	out := []historyTypes.DeliveryHistoryResponse{}
	if actor == nil {
		return out, nil
	}

	query := s.DB.WithContext(ctx).Preload("User").Where("user_id = ?", actor.ID)
	if filter.Role != "" {
		role := parcelModel.Role(filter.Role)
		if !role.IsValid() {
			return nil, apperr.InvalidArgument("role", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", filter.Role))
		}
		query = query.Where("role = ?", role)
	}

	var rows []parcelModel.DeliveryHistory
	if err := query.Order(utils.OrderBy(filter.Ordering, "-timestamp", "timestamp")).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list delivery history: %w", err)
	}
	for i := range rows {
		out = append(out, historyTypes.NewDeliveryHistoryResponse(&rows[i]))
	}
	return out, nil
}

// GetDeliveryHistory returns one of the caller's links. Rows owned by
// someone else are reported as missing.
func (s *Service) GetDeliveryHistory(ctx context.Context, id uint, actor *user.User) (*historyTypes.DeliveryHistoryResponse, error) {
	if actor == nil {
		return nil, apperr.NotFound("Delivery history entry not found")
	}
	var h parcelModel.DeliveryHistory
	err := s.DB.WithContext(ctx).Preload("User").
		Where("id = ? AND user_id = ?", id, actor.ID).
		First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Delivery history entry not found")
		}
		return nil, fmt.Errorf("failed to load delivery history %d: %w", id, err)
	}
	resp := historyTypes.NewDeliveryHistoryResponse(&h)
	return &resp, nil
}
