package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-tracking/apperr"
	parcelModel "parcel-tracking/models/parcel"

	"gorm.io/gorm"
)

// Service manages tracking locations and delivery routes of parcels.
type Service struct {
	DB *gorm.DB
}

func NewTrackingService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

type requiredField struct {
	name    string
	missing bool
}

func requireAll(fields []requiredField) error {
	for _, f := range fields {
		if f.missing {
			return apperr.InvalidArgument(f.name, f.name+" field required")
		}
	}
	return nil
}

func ensureParcel(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&parcelModel.Parcel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to load parcel %d: %w", id, err)
	}
	if n == 0 {
		return apperr.InvalidArgument("parcel", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
	}
	return nil
}

func nonBlank(field string, value *string, dest *string) error {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return apperr.InvalidArgument(field, field+" may not be blank")
	}
	*dest = v
	return nil
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uint, what string) error {
	res := db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s %d: %w", strings.ToLower(what), id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(what + " not found")
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
