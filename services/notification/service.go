package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-tracking/apperr"
	notificationModel "parcel-tracking/models/notification"
	parcelModel "parcel-tracking/models/parcel"
	"parcel-tracking/models/user"
	notificationTypes "parcel-tracking/types/notification"
	"parcel-tracking/utils"

	"gorm.io/gorm"
)

// Service exposes a user's own notifications. Every operation is scoped to
// the owner passed in; other users' rows behave as if they did not exist.
type Service struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

func (s *Service) owned(ctx context.Context, owner *user.User) *gorm.DB {
	return s.DB.WithContext(ctx).
		Model(&notificationModel.Notification{}).
		Where("user_id = ?", owner.ID)
}

// List returns the owner's notifications, newest first by default.
func (s *Service) List(ctx context.Context, owner *user.User, filter notificationTypes.ListFilter) ([]notificationModel.Notification, error) {
	rows := []notificationModel.Notification{}
	if owner == nil {
		return rows, nil
	}

	query := s.owned(ctx, owner)
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}
	err := query.Order(utils.OrderBy(filter.Ordering, "-created_at", "created_at")).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return rows, nil
}

// Get returns one of the owner's notifications.
func (s *Service) Get(ctx context.Context, id uint, owner *user.User) (*notificationModel.Notification, error) {
	if owner == nil {
		return nil, apperr.NotFound("Notification not found")
	}
	var n notificationModel.Notification
	if err := s.owned(ctx, owner).Where("id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Notification not found")
		}
		return nil, fmt.Errorf("failed to load notification %d: %w", id, err)
	}
	return &n, nil
}

// Create stores a notification for the owner. The owner is never taken from
// the request.
func (s *Service) Create(ctx context.Context, req *notificationTypes.NotificationRequest, owner *user.User) (*notificationModel.Notification, error) {
	if owner == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, apperr.InvalidArgument("title", "title field required")
	}
	if req.Message == nil || strings.TrimSpace(*req.Message) == "" {
		return nil, apperr.InvalidArgument("message", "message field required")
	}

	ownerID := owner.ID
	n := notificationModel.Notification{
		UserID:  &ownerID,
		Title:   strings.TrimSpace(*req.Title),
		Message: *req.Message,
	}
	if req.IsRead != nil {
		n.IsRead = *req.IsRead
	}

	db := s.DB.WithContext(ctx)
	if req.Parcel != nil {
		if err := ensureParcel(db, *req.Parcel); err != nil {
			return nil, err
		}
		n.ParcelID = req.Parcel
	}
	if err := db.Omit("User", "Parcel").Create(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &n, nil
}

// Update edits the title, message, read flag or parcel of an owned
// notification.
func (s *Service) Update(ctx context.Context, id uint, req *notificationTypes.NotificationRequest, owner *user.User) (*notificationModel.Notification, error) {
	n, err := s.Get(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperr.InvalidArgument("title", "title may not be blank")
		}
		n.Title = strings.TrimSpace(*req.Title)
	}
	if req.Message != nil {
		n.Message = *req.Message
	}
	if req.IsRead != nil {
		n.IsRead = *req.IsRead
	}
	if req.Parcel != nil {
		if err := ensureParcel(db, *req.Parcel); err != nil {
			return nil, err
		}
		n.ParcelID = req.Parcel
	}

	if err := db.Omit("User", "Parcel").Save(n).Error; err != nil {
		return nil, fmt.Errorf("failed to update notification %d: %w", id, err)
	}
	return n, nil
}

// Delete removes an owned notification.
func (s *Service) Delete(ctx context.Context, id uint, owner *user.User) error {
	if owner == nil {
		return apperr.NotFound("Notification not found")
	}
	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner.ID).
		Delete(&notificationModel.Notification{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete notification %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Notification not found")
	}
	return nil
}

// MarkOneRead flips one owned notification to read. Marking an already read
// notification again succeeds.
func (s *Service) MarkOneRead(ctx context.Context, id uint, owner *user.User) error {
	if _, err := s.Get(ctx, id, owner); err != nil {
		return err
	}
	err := s.owned(ctx, owner).
		Where("id = ?", id).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", id, err)
	}
	return nil
}

// MarkAllRead flips every unread notification of the owner in one statement
// and reports how many changed.
func (s *Service) MarkAllRead(ctx context.Context, owner *user.User) (int64, error) {
	if owner == nil {
		return 0, apperr.Unauthorized("Authentication required")
	}
	res := s.owned(ctx, owner).
		Where("is_read = ?", false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func ensureParcel(db *gorm.DB, id uint) error {
	var n int64
	if err := db.Model(&parcelModel.Parcel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to load parcel %d: %w", id, err)
	}
	if n == 0 {
		return apperr.InvalidArgument("parcel", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
	}
	return nil
}
