package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-tracking/apperr"
	orgModel "parcel-tracking/models/organization"
	orgTypes "parcel-tracking/types/organization"
	"parcel-tracking/utils"

	"gorm.io/gorm"
)

const duplicateDepartment = "The fields organization, name must make a unique set."

// ListDepartments returns departments ordered by name.
func (s *Service) ListDepartments(ctx context.Context, filter orgTypes.DepartmentListFilter) ([]orgTypes.DepartmentResponse, error) {
	query := s.DB.WithContext(ctx).Preload("Organization")
	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.Search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, utils.ContainsPattern(filter.Search))
	}

	var rows []orgModel.Department
	if err := query.Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	out := make([]orgTypes.DepartmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, orgTypes.NewDepartmentResponse(&rows[i]))
	}
	return out, nil
}

// GetDepartment returns one department.
func (s *Service) GetDepartment(ctx context.Context, id uint) (*orgTypes.DepartmentResponse, error) {
	dept, err := loadDepartment(s.DB.WithContext(ctx).Preload("Organization"), id)
	if err != nil {
		return nil, err
	}
	resp := orgTypes.NewDepartmentResponse(dept)
	return &resp, nil
}

func loadDepartment(db *gorm.DB, id uint) (*orgModel.Department, error) {
	var dept orgModel.Department
	if err := db.First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Department not found")
		}
		return nil, fmt.Errorf("failed to load department %d: %w", id, err)
	}
	return &dept, nil
}

// CreateDepartment adds a department to an existing organization.
func (s *Service) CreateDepartment(ctx context.Context, req *orgTypes.DepartmentRequest) (*orgTypes.DepartmentResponse, error) {
	if req.Organization == nil {
		return nil, apperr.InvalidArgument("organization", "organization field required")
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, apperr.InvalidArgument("name", "name field required")
	}

	dept := orgModel.Department{
		OrganizationID: *req.Organization,
		Name:           strings.TrimSpace(*req.Name),
		Description:    req.Description,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkDepartment(tx, &dept); err != nil {
			return err
		}
		if err := tx.Omit("Organization").Create(&dept).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("name", duplicateDepartment)
			}
			return fmt.Errorf("failed to create department: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetDepartment(ctx, dept.ID)
}

// UpdateDepartment edits a department. full requires organization and name.
func (s *Service) UpdateDepartment(ctx context.Context, id uint, req *orgTypes.DepartmentRequest, full bool) (*orgTypes.DepartmentResponse, error) {
	if full {
		if req.Organization == nil {
			return nil, apperr.InvalidArgument("organization", "organization field required")
		}
		if req.Name == nil {
			return nil, apperr.InvalidArgument("name", "name field required")
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dept, err := loadDepartment(tx, id)
		if err != nil {
			return err
		}
		if req.Organization != nil {
			dept.OrganizationID = *req.Organization
		}
		if req.Name != nil {
			dept.Name = strings.TrimSpace(*req.Name)
			if dept.Name == "" {
				return apperr.InvalidArgument("name", "name may not be blank")
			}
		}
		if req.Description != nil {
			dept.Description = req.Description
		}
		if err := s.checkDepartment(tx, dept); err != nil {
			return err
		}
		if err := tx.Omit("Organization").Save(dept).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("name", duplicateDepartment)
			}
			return fmt.Errorf("failed to update department %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetDepartment(ctx, id)
}

// DeleteDepartment removes a department. Its parcels stay, detached.
func (s *Service) DeleteDepartment(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&orgModel.Department{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete department %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Department not found")
	}
	return nil
}

// checkDepartment verifies the organization exists and the name is free
// within it.
func (s *Service) checkDepartment(tx *gorm.DB, dept *orgModel.Department) error {
	if _, err := s.load(tx.Select("id"), dept.OrganizationID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.InvalidArgument("organization", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", dept.OrganizationID))
		}
		return err
	}

	var n int64
	if err := tx.Model(&orgModel.Department{}).
		Where("organization_id = ? AND name = ? AND id <> ?", dept.OrganizationID, dept.Name, dept.ID).
		Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check department name: %w", err)
	}
	if n > 0 {
		return apperr.Conflict("name", duplicateDepartment)
	}
	return nil
}
