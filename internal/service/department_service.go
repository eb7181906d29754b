package service

import (
	"context"

	"github.com/spec-kit/employee-service/internal/clock"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
)

const resourceDepartment = "Department"

// DepartmentService manages departments.
type DepartmentService struct {
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
	clock       clock.Clock
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, dispatcher events.Dispatcher, clk clock.Clock) *DepartmentService {
	if clk == nil {
		clk = clock.System()
	}
	return &DepartmentService{departments: departments, dispatcher: dispatcher, clock: clk}
}

// List returns every department in store order.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, resourceDepartment)
	}
	return depts, nil
}

// Create inserts a department; dept.ID is set on success.
func (s *DepartmentService) Create(ctx context.Context, dept *domain.Department) error {
	if err := s.departments.Create(ctx, dept); err != nil {
		return mapRepoError(err, resourceDepartment)
	}
	s.publish(ctx, events.EventDepartmentCreated, dept)
	return nil
}

// Update overwrites name and active flag of the department identified by dept.ID.
func (s *DepartmentService) Update(ctx context.Context, dept *domain.Department) (*domain.Department, error) {
	existing, err := s.departments.GetByID(ctx, dept.ID)
	if err != nil {
		return nil, mapRepoError(err, resourceDepartment)
	}
	existing.Name = dept.Name
	existing.IsActive = dept.IsActive
	if err := s.departments.Update(ctx, existing); err != nil {
		return nil, mapRepoError(err, resourceDepartment)
	}
	s.publish(ctx, events.EventDepartmentUpdated, existing)
	return existing, nil
}

// Delete removes a department by id.
func (s *DepartmentService) Delete(ctx context.Context, id int) error {
	existing, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, resourceDepartment)
	}
	if err := s.departments.Delete(ctx, existing.ID); err != nil {
		return mapRepoError(err, resourceDepartment)
	}
	s.publish(ctx, events.EventDepartmentDeleted, existing)
	return nil
}

func (s *DepartmentService) publish(ctx context.Context, eventType events.EventType, dept *domain.Department) {
	if s.dispatcher == nil {
		return
	}
	payload := events.DepartmentPayload{Name: dept.Name, IsActive: dept.IsActive}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, dept.ID, s.clock.Now(), payload))
}
