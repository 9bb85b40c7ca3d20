package parcel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcel-tracking/apperr"
	"parcel-tracking/logger"
	"parcel-tracking/models/notification"
	parcelModel "parcel-tracking/models/parcel"
	"parcel-tracking/models/user"
	"parcel-tracking/services/events"
	"parcel-tracking/services/metrics"
	parcelTypes "parcel-tracking/types/parcel"

	"gorm.io/gorm"
)

// Service owns the parcel lifecycle: registration, edits, audited status
// transitions and the per-user parcel views.
type Service struct {
	DB        *gorm.DB
	Publisher events.Publisher
	now       func() time.Time
}

// NewParcelService creates a new parcel service. A nil publisher drops
// events; any publisher that is not already a Dispatcher is wrapped in one so
// transitions never wait on a broker.
func NewParcelService(db *gorm.DB, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop()
	}
	if _, ok := publisher.(*events.Dispatcher); !ok {
		publisher = events.NewDispatcher(publisher, events.DefaultQueueSize, events.DefaultPublishTimeout)
	}
	return &Service{
		DB:        db,
		Publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// withDetail preloads everything the detail projection renders, each
// collection in display order.
func withDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Organization").
		Preload("Department").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("StatusHistory.ChangedBy").
		Preload("TrackingLocations", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp DESC, id DESC")
		}).
		Preload("DeliveryRoutes", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_sequence ASC, id ASC")
		}).
		Preload("Review").
		Preload("Review.Reviewer")
}

func actorID(actor *user.User) *uint {
	if actor == nil {
		return nil
	}
	id := actor.ID
	return &id
}

// Get returns the detail projection of one parcel.
func (s *Service) Get(ctx context.Context, id uint) (*parcelTypes.Detail, error) {
	var p parcelModel.Parcel
	if err := withDetail(s.DB.WithContext(ctx)).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Parcel not found")
		}
		return nil, fmt.Errorf("failed to load parcel %d: %w", id, err)
	}
	detail := parcelTypes.NewDetail(&p)
	return &detail, nil
}

// FindByTrackingNumber looks a parcel up by exact, case-sensitive tracking
// number.
func (s *Service) FindByTrackingNumber(ctx context.Context, code string) (*parcelTypes.Detail, error) {
	if code == "" {
		return nil, apperr.InvalidArgument("tracking_number", "tracking_number parameter required")
	}

	var p parcelModel.Parcel
	err := withDetail(s.DB.WithContext(ctx)).
		Where("tracking_number = ?", code).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Parcel not found")
		}
		return nil, fmt.Errorf("failed to look up tracking number: %w", err)
	}
	detail := parcelTypes.NewDetail(&p)
	return &detail, nil
}

// ListForUser returns the parcels the actor sends or receives, newest first.
// An anonymous actor has no parcels.
func (s *Service) ListForUser(ctx context.Context, actor *user.User) ([]parcelTypes.ListItem, error) {
	if actor == nil {
		return []parcelTypes.ListItem{}, nil
	}

	db := s.DB.WithContext(ctx)
	linked := db.Model(&parcelModel.DeliveryHistory{}).
		Select("parcel_id").
		Where("user_id = ?", actor.ID)

	var rows []parcelModel.Parcel
	err := db.Preload("Department").
		Where("id IN (?)", linked).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list parcels for user %d: %w", actor.ID, err)
	}
	return parcelTypes.NewListItems(rows), nil
}

// TransitionStatus moves a parcel to the requested status. The history row,
// the status change and the actor's notification commit together; events
// go out after the commit.
func (s *Service) TransitionStatus(ctx context.Context, parcelID uint, requested string, actor *user.User, notes *string) (*parcelTypes.Detail, error) {
	db := s.DB.WithContext(ctx)

	var exists int64
	if err := db.Model(&parcelModel.Parcel{}).Where("id = ?", parcelID).Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("failed to load parcel %d: %w", parcelID, err)
	}
	if exists == 0 {
		return nil, apperr.NotFound("Parcel not found")
	}

	status, err := parcelModel.ParseStatus(requested)
	if err != nil {
		return nil, apperr.InvalidArgument("status", "Invalid status")
	}

	var (
		p        parcelModel.Parcel
		previous parcelModel.Status
		note     notification.Notification
	)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, parcelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Parcel not found")
			}
			return fmt.Errorf("failed to load parcel %d: %w", parcelID, err)
		}

		now := s.now()
		previous = p.Status

		history := parcelModel.StatusHistory{
			ParcelID:       p.ID,
			PreviousStatus: previous,
			NewStatus:      status,
			ChangedByID:    actorID(actor),
			Notes:          notes,
			CreatedAt:      now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}

		updates := map[string]interface{}{
			"status":     status,
			"updated_at": now,
		}
		if status == parcelModel.StatusDelivered {
			updates["delivered_at"] = now
		}
		if err := tx.Model(&p).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update parcel status: %w", err)
		}

		pid := p.ID
		note.UserID = actorID(actor)
		note.ParcelID = &pid
		note.Title = fmt.Sprintf("Status Updated: %s", p.TrackingNumber)
		note.Message = fmt.Sprintf("Parcel status changed to %s", status)
		note.CreatedAt = now
		if err := tx.Create(&note).Error; err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(status)).Inc()
	logger.Info(fmt.Sprintf("Parcel %s moved from %s to %s", p.TrackingNumber, previous, status))

	notificationID := note.ID
	s.publish(ctx,
		&events.Event{
			EventType:      events.TypeStatusChanged,
			ParcelID:       p.ID,
			TrackingNumber: p.TrackingNumber,
			OrganizationID: p.OrganizationID,
			PreviousStatus: string(previous),
			NewStatus:      string(status),
			UserID:         actorID(actor),
			Timestamp:      note.CreatedAt,
		},
		&events.Event{
			EventType:      events.TypeNotificationCreated,
			ParcelID:       p.ID,
			TrackingNumber: p.TrackingNumber,
			OrganizationID: p.OrganizationID,
			UserID:         note.UserID,
			NotificationID: &notificationID,
			Title:          note.Title,
			Message:        note.Message,
			Timestamp:      note.CreatedAt,
		},
	)

	return s.Get(ctx, p.ID)
}

// publish queues events on the dispatcher. A full or closed queue is counted
// and logged but never reaches the caller; the committed rows are the source
// of truth.
func (s *Service) publish(ctx context.Context, evts ...*events.Event) {
	for _, e := range evts {
		if e.EventType == events.TypeNotificationCreated && e.UserID == nil {
			continue
		}
		if err := s.Publisher.Publish(ctx, e); err != nil {
			metrics.EventPublishFailures.WithLabelValues(e.EventType).Inc()
			logger.Warning(fmt.Sprintf("Failed to publish %s for parcel %s: %v", e.EventType, e.TrackingNumber, err))
		}
	}
}

// Delete removes a parcel. History, routes, locations, review and
// notifications go with it through the foreign key policies.
func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&parcelModel.Parcel{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete parcel %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Parcel not found")
	}
	return nil
}
