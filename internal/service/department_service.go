package service

import (
	"context"
	"strings"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

// DepartmentService manages organisational units.
type DepartmentService struct {
	departments repository.DepartmentRepository
}

// DepartmentInput describes a department create or update. Nil fields are left unchanged on update.
type DepartmentInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departments: departments}
}

// List returns departments. Only managers may see inactive ones.
func (s *DepartmentService) List(ctx context.Context, actor Actor, includeInactive bool) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx, includeInactive && actor.IsManager())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// Get fetches a department.
func (s *DepartmentService) Get(ctx context.Context, actor Actor, id string) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "department")
	}
	if !dept.IsActive && !actor.IsManager() {
		return nil, apperrors.NewNotFound("department", nil)
	}
	return dept, nil
}

// Create adds a department.
func (s *DepartmentService) Create(ctx context.Context, actor Actor, input DepartmentInput) (*domain.Department, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	dept := &domain.Department{IsActive: true}
	if err := applyDepartment(dept, input, true); err != nil {
		return nil, err
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, conflictOnDuplicate(err, "department name already exists", map[string]any{"name": dept.Name})
	}
	return dept, nil
}

// Update modifies department metadata.
func (s *DepartmentService) Update(ctx context.Context, actor Actor, id string, input DepartmentInput) (*domain.Department, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "department")
	}
	if err := applyDepartment(dept, input, false); err != nil {
		return nil, err
	}
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, conflictOnDuplicate(err, "department name already exists", map[string]any{"name": dept.Name})
	}
	return dept, nil
}

func applyDepartment(dept *domain.Department, input DepartmentInput, creating bool) error {
	errs := fieldErrors{}
	if input.Name != nil || creating {
		name := ""
		if input.Name != nil {
			name = strings.TrimSpace(*input.Name)
		}
		errs.require("name", name)
		dept.Name = name
	}
	if input.Description != nil {
		dept.Description = strings.TrimSpace(*input.Description)
	}
	if input.IsActive != nil {
		dept.IsActive = *input.IsActive
	}
	return errs.err("invalid department")
}
