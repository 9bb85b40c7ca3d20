package parcel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-tracking/apperr"
	"parcel-tracking/models/organization"
	parcelModel "parcel-tracking/models/parcel"
	"parcel-tracking/models/user"
	"parcel-tracking/services/metrics"
	parcelTypes "parcel-tracking/types/parcel"
	"parcel-tracking/utils"

	"gorm.io/gorm"
)

// Mode selects how a write request is applied to a parcel.
type Mode int

const (
	// Full requires every mandatory field, as create and PUT do.
	Full Mode = iota
	// Partial applies only the fields present in the request.
	Partial
)

const duplicateTrackingNumber = "A parcel with this tracking number already exists."

// Create registers a new parcel. The creator, when known, is linked as the
// sender; receiver_user_uuid links a registered receiver.
func (s *Service) Create(ctx context.Context, req *parcelTypes.WriteRequest, actor *user.User) (*parcelTypes.Detail, error) {
	p := parcelModel.Parcel{
		ParcelType: parcelModel.TypeParcel,
		Status:     parcelModel.StatusPending,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.apply(tx, &p, req, Full); err != nil {
			return err
		}
		if p.Status == parcelModel.StatusDelivered {
			now := s.now()
			p.DeliveredAt = &now
		}
		if err := tx.Omit("Organization", "Department").Create(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("tracking_number", duplicateTrackingNumber)
			}
			return fmt.Errorf("failed to create parcel: %w", err)
		}

		if actor != nil {
			if err := linkUser(tx, p.ID, actor.ID, parcelModel.RoleSender); err != nil {
				return err
			}
		}
		return s.linkReceiver(tx, p.ID, req.ReceiverUserUUID)
	})
	if err != nil {
		return nil, err
	}

	metrics.ParcelsCreated.Inc()
	return s.Get(ctx, p.ID)
}

// Update edits a parcel in place. Status may be written here without a
// history row; the audited path is TransitionStatus.
func (s *Service) Update(ctx context.Context, id uint, req *parcelTypes.WriteRequest, mode Mode) (*parcelTypes.Detail, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p parcelModel.Parcel
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Parcel not found")
			}
			return fmt.Errorf("failed to load parcel %d: %w", id, err)
		}

		previous := p.Status
		if err := s.apply(tx, &p, req, mode); err != nil {
			return err
		}
		if p.Status == parcelModel.StatusDelivered && previous != parcelModel.StatusDelivered {
			now := s.now()
			p.DeliveredAt = &now
		}

		if err := tx.Omit("Organization", "Department").Save(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("tracking_number", duplicateTrackingNumber)
			}
			return fmt.Errorf("failed to update parcel %d: %w", id, err)
		}
		return s.linkReceiver(tx, p.ID, req.ReceiverUserUUID)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// apply validates req and copies it onto p. p.ID is zero on create, so the
// uniqueness check naturally excludes the parcel being edited only on update.
func (s *Service) apply(tx *gorm.DB, p *parcelModel.Parcel, req *parcelTypes.WriteRequest, mode Mode) error {
	if mode == Full {
		if err := requireFields(req); err != nil {
			return err
		}
	}

	if req.TrackingNumber != nil {
		tn := strings.TrimSpace(*req.TrackingNumber)
		if tn == "" {
			return apperr.InvalidArgument("tracking_number", "tracking_number may not be blank")
		}
		var taken int64
		if err := tx.Model(&parcelModel.Parcel{}).
			Where("tracking_number = ? AND id <> ?", tn, p.ID).
			Count(&taken).Error; err != nil {
			return fmt.Errorf("failed to check tracking number: %w", err)
		}
		if taken > 0 {
			return apperr.Conflict("tracking_number", duplicateTrackingNumber)
		}
		p.TrackingNumber = tn
	}

	if req.ParcelType != nil {
		t, err := parcelModel.ParseType(*req.ParcelType)
		if err != nil {
			return apperr.InvalidArgument("parcel_type", fmt.Sprintf("%q is not a valid choice.", *req.ParcelType))
		}
		p.ParcelType = t
	}
	if req.Status != nil {
		st, err := parcelModel.ParseStatus(*req.Status)
		if err != nil {
			return apperr.InvalidArgument("status", fmt.Sprintf("%q is not a valid choice.", *req.Status))
		}
		p.Status = st
	}

	if req.Organization != nil {
		var org organization.Organization
		if err := tx.Select("id").First(&org, *req.Organization).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.InvalidArgument("organization", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *req.Organization))
			}
			return fmt.Errorf("failed to load organization: %w", err)
		}
		p.OrganizationID = org.ID
	}
	if req.Department != nil {
		id := *req.Department
		p.DepartmentID = &id
	}
	if p.DepartmentID != nil {
		var dept organization.Department
		if err := tx.First(&dept, *p.DepartmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.InvalidArgument("department", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *p.DepartmentID))
			}
			return fmt.Errorf("failed to load department: %w", err)
		}
		if dept.OrganizationID != p.OrganizationID {
			return apperr.InvalidArgument("department", "Department does not belong to the parcel's organization.")
		}
	}

	if req.SenderName != nil {
		p.SenderName = strings.TrimSpace(*req.SenderName)
	}
	if req.ReceiverName != nil {
		p.ReceiverName = strings.TrimSpace(*req.ReceiverName)
	}
	if req.SenderEmail != nil {
		p.SenderEmail = blankToNil(req.SenderEmail)
	}
	if req.SenderPhone != nil {
		p.SenderPhone = blankToNil(req.SenderPhone)
	}
	if req.ReceiverEmail != nil {
		p.ReceiverEmail = blankToNil(req.ReceiverEmail)
	}
	if req.ReceiverPhone != nil {
		p.ReceiverPhone = blankToNil(req.ReceiverPhone)
	}
	if req.ReceiverAddress != nil {
		p.ReceiverAddress = blankToNil(req.ReceiverAddress)
	}
	if req.Description != nil {
		p.Description = blankToNil(req.Description)
	}
	if req.CurrentLocation != nil {
		p.CurrentLocation = blankToNil(req.CurrentLocation)
	}
	if req.Weight != nil {
		if req.Weight.IsNegative() {
			return apperr.InvalidArgument("weight", "Ensure this value is greater than or equal to 0.")
		}
		w := req.Weight.Round(2)
		p.Weight = &w
	}
	if req.Value != nil {
		if req.Value.IsNegative() {
			return apperr.InvalidArgument("value", "Ensure this value is greater than or equal to 0.")
		}
		v := req.Value.Round(2)
		p.Value = &v
	}
	if req.Latitude != nil {
		p.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = req.Longitude
	}

	if p.SenderName == "" {
		return apperr.InvalidArgument("sender_name", "sender_name may not be blank")
	}
	if p.ReceiverName == "" {
		return apperr.InvalidArgument("receiver_name", "receiver_name may not be blank")
	}
	return nil
}

func requireFields(req *parcelTypes.WriteRequest) error {
	switch {
	case req.Organization == nil:
		return apperr.InvalidArgument("organization", "organization field required")
	case req.TrackingNumber == nil:
		return apperr.InvalidArgument("tracking_number", "tracking_number field required")
	case req.SenderName == nil:
		return apperr.InvalidArgument("sender_name", "sender_name field required")
	case req.ReceiverName == nil:
		return apperr.InvalidArgument("receiver_name", "receiver_name field required")
	}
	return nil
}

func blankToNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// linkUser records that userID plays role on the parcel, once.
func linkUser(tx *gorm.DB, parcelID, userID uint, role parcelModel.Role) error {
	link := parcelModel.DeliveryHistory{ParcelID: parcelID, UserID: userID, Role: role}
	err := tx.Where(parcelModel.DeliveryHistory{ParcelID: parcelID, UserID: userID, Role: role}).
		FirstOrCreate(&link).Error
	if err != nil {
		return fmt.Errorf("failed to link user %d to parcel %d: %w", userID, parcelID, err)
	}
	return nil
}

func (s *Service) linkReceiver(tx *gorm.DB, parcelID uint, receiverUUID *string) error {
	if receiverUUID == nil || *receiverUUID == "" {
		return nil
	}
	receiver, err := utils.GetUserByUUID(tx, *receiverUUID)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			return apperr.InvalidArgument("receiver_user_uuid", "No user with this uuid exists.")
		}
		return fmt.Errorf("failed to load receiver: %w", err)
	}
	return linkUser(tx, parcelID, receiver.ID, parcelModel.RoleReceiver)
}
