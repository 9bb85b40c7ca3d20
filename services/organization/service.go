package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-tracking/apperr"
	orgModel "parcel-tracking/models/organization"
	parcelModel "parcel-tracking/models/parcel"
	"parcel-tracking/models/user"
	orgTypes "parcel-tracking/types/organization"
	"parcel-tracking/utils"

	"gorm.io/gorm"
)

const duplicateName = "organization with this name already exists."

// Service manages organizations and their departments.
type Service struct {
	DB *gorm.DB
}

func NewOrganizationService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// List returns organizations filtered by id/name and searched over name and
// description.
func (s *Service) List(ctx context.Context, filter orgTypes.ListFilter) ([]orgTypes.OrganizationResponse, error) {
	query := s.DB.WithContext(ctx).Preload("Admin")
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.Search != "" {
		pattern := utils.ContainsPattern(filter.Search)
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var rows []orgModel.Organization
	if err := query.Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	out := make([]orgTypes.OrganizationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, orgTypes.NewOrganizationResponse(&rows[i]))
	}
	return out, nil
}

// Get returns one organization with its admin.
func (s *Service) Get(ctx context.Context, id uint) (*orgTypes.OrganizationResponse, error) {
	org, err := s.load(s.DB.WithContext(ctx).Preload("Admin"), id)
	if err != nil {
		return nil, err
	}
	resp := orgTypes.NewOrganizationResponse(org)
	return &resp, nil
}

func (s *Service) load(db *gorm.DB, id uint) (*orgModel.Organization, error) {
	var org orgModel.Organization
	if err := db.First(&org, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Organization not found")
		}
		return nil, fmt.Errorf("failed to load organization %d: %w", id, err)
	}
	return &org, nil
}

// Create registers an organization administered by the caller.
func (s *Service) Create(ctx context.Context, req *orgTypes.OrganizationRequest, admin *user.User) (*orgTypes.OrganizationResponse, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, apperr.InvalidArgument("name", "name field required")
	}

	org := orgModel.Organization{
		Name:        strings.TrimSpace(*req.Name),
		Description: req.Description,
	}
	if admin != nil {
		id := admin.ID
		org.AdminID = &id
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, org.Name, 0); err != nil {
			return err
		}
		if err := tx.Omit("Admin").Create(&org).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("name", duplicateName)
			}
			return fmt.Errorf("failed to create organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, org.ID)
}

// Update edits name and description. full requires the name.
func (s *Service) Update(ctx context.Context, id uint, req *orgTypes.OrganizationRequest, full bool) (*orgTypes.OrganizationResponse, error) {
	if full && req.Name == nil {
		return nil, apperr.InvalidArgument("name", "name field required")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperr.InvalidArgument("name", "name may not be blank")
			}
			if err := ensureUniqueName(tx, name, org.ID); err != nil {
				return err
			}
			org.Name = name
		}
		if req.Description != nil {
			org.Description = req.Description
		}
		if err := tx.Omit("Admin").Save(org).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("name", duplicateName)
			}
			return fmt.Errorf("failed to update organization %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes an organization together with its departments and parcels.
func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&orgModel.Organization{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete organization %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Organization not found")
	}
	return nil
}

func ensureUniqueName(tx *gorm.DB, name string, selfID uint) error {
	var n int64
	if err := tx.Model(&orgModel.Organization{}).
		Where("name = ? AND id <> ?", name, selfID).
		Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check organization name: %w", err)
	}
	if n > 0 {
		return apperr.Conflict("name", duplicateName)
	}
	return nil
}

// Statistics counts an organization's parcels by status. All counts come
// from one aggregate query, so they describe the same snapshot.
func (s *Service) Statistics(ctx context.Context, orgID uint) (*orgTypes.Statistics, error) {
	db := s.DB.WithContext(ctx)
	if _, err := s.load(db.Select("id"), orgID); err != nil {
		return nil, err
	}

	var stats orgTypes.Statistics
	err := db.Model(&parcelModel.Parcel{}).
		Select(
			`COUNT(*) AS total_parcels,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS delivered,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS in_transit,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS lost`,
			parcelModel.StatusDelivered,
			parcelModel.StatusInTransit,
			parcelModel.StatusPending,
			parcelModel.StatusLost,
		).
		Where("organization_id = ?", orgID).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics for organization %d: %w", orgID, err)
	}
	return &stats, nil
}
