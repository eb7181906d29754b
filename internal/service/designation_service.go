package service

import (
	"context"

	"github.com/spec-kit/employee-service/internal/clock"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

const resourceDesignation = "Designation"

// DesignationService manages designations.
type DesignationService struct {
	designations repository.DesignationRepository
	dispatcher   events.Dispatcher
	clock        clock.Clock
}

// NewDesignationService constructs the service.
func NewDesignationService(designations repository.DesignationRepository, dispatcher events.Dispatcher, clk clock.Clock) *DesignationService {
	if clk == nil {
		clk = clock.System()
	}
	return &DesignationService{designations: designations, dispatcher: dispatcher, clock: clk}
}

// List returns every designation.
func (s *DesignationService) List(ctx context.Context) ([]domain.Designation, error) {
	list, err := s.designations.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, resourceDesignation)
	}
	return list, nil
}

// GetByID fetches a designation.
func (s *DesignationService) GetByID(ctx context.Context, id int) (*domain.Designation, error) {
	designation, err := s.designations.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, resourceDesignation)
	}
	return designation, nil
}

// Create inserts a designation. The department id is stored as given.
func (s *DesignationService) Create(ctx context.Context, designation *domain.Designation) error {
	if err := s.designations.Create(ctx, designation); err != nil {
		return mapRepoError(err, resourceDesignation)
	}
	s.publish(ctx, events.EventDesignationCreated, designation)
	return nil
}

// Update overwrites name and department id. pathID must equal designation.ID.
func (s *DesignationService) Update(ctx context.Context, pathID int, designation *domain.Designation) (*domain.Designation, error) {
	if pathID != designation.ID {
		return nil, apperrors.NewValidationError("Designation ID mismatch", nil)
	}
	existing, err := s.designations.GetByID(ctx, pathID)
	if err != nil {
		return nil, mapRepoError(err, resourceDesignation)
	}
	existing.Name = designation.Name
	existing.DepartmentID = designation.DepartmentID
	if err := s.designations.Update(ctx, existing); err != nil {
		return nil, mapRepoError(err, resourceDesignation)
	}
	s.publish(ctx, events.EventDesignationUpdated, existing)
	return existing, nil
}

// Delete removes a designation by id.
func (s *DesignationService) Delete(ctx context.Context, id int) error {
	existing, err := s.designations.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, resourceDesignation)
	}
	if err := s.designations.Delete(ctx, existing.ID); err != nil {
		return mapRepoError(err, resourceDesignation)
	}
	s.publish(ctx, events.EventDesignationDeleted, existing)
	return nil
}

func (s *DesignationService) publish(ctx context.Context, eventType events.EventType, designation *domain.Designation) {
	if s.dispatcher == nil {
		return
	}
	payload := events.DesignationPayload{DepartmentID: designation.DepartmentID, Name: designation.Name}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, designation.ID, s.clock.Now(), payload))
}
