package service

import (
	"context"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/clock"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

const (
	resourceEmployee    = "Employee"
	msgInvalidLogin     = "Invalid email or password"
	msgEmployeeMismatch = "Employee ID mismatch"

	// only this exact value reverses the order
	sortDescending = "desc"
)

// EmployeeService coordinates employee records, search and login.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
	clock      clock.Clock
	bcryptCost int
}

// EmployeeDependencies encapsulates collaborators of the employee service.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Dispatcher   events.Dispatcher
	Clock        clock.Clock
}

// EmployeeInput holds the client-writable employee fields.
type EmployeeInput struct {
	Name          string
	ContactNo     string
	Email         string
	City          string
	Pincode       string
	AltContactNo  string
	Address       string
	DesignationID int
	Password      string
}

// SearchParams are the raw search inputs after query parsing.
type SearchParams struct {
	Name     string
	City     string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}

// NewEmployeeService builds the service.
func NewEmployeeService(cfg config.Config, deps EmployeeDependencies) *EmployeeService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.System()
	}
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		dispatcher: deps.Dispatcher,
		clock:      clk,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// List returns every employee.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	list, err := s.employees.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, resourceEmployee)
	}
	return list, nil
}

// GetByID fetches an employee.
func (s *EmployeeService) GetByID(ctx context.Context, id int) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, resourceEmployee)
	}
	return employee, nil
}

// Create rejects a contact number or email already used by any employee, then inserts with createdDate = now.
func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error) {
	if err := s.ensureUnique(ctx, in.ContactNo, in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	employee := &domain.Employee{
		Name:          in.Name,
		ContactNo:     in.ContactNo,
		Email:         in.Email,
		City:          in.City,
		Pincode:       in.Pincode,
		AltContactNo:  in.AltContactNo,
		Address:       in.Address,
		DesignationID: in.DesignationID,
		CreatedDate:   s.clock.Now(),
		PasswordHash:  hash,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, mapRepoError(err, resourceEmployee)
	}
	s.publish(ctx, events.EventEmployeeCreated, employee)
	return employee, nil
}

// Update overwrites the writable fields except the password and stamps modifiedDate.
// pathID must equal bodyID; uniqueness is re-checked against every other employee.
func (s *EmployeeService) Update(ctx context.Context, pathID, bodyID int, in EmployeeInput) (*domain.Employee, error) {
	if pathID != bodyID {
		return nil, apperrors.NewValidationError(msgEmployeeMismatch, nil)
	}
	employee, err := s.employees.GetByID(ctx, pathID)
	if err != nil {
		return nil, mapRepoError(err, resourceEmployee)
	}
	if err := s.ensureUnique(ctx, in.ContactNo, in.Email, pathID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	employee.Name = in.Name
	employee.ContactNo = in.ContactNo
	employee.AltContactNo = in.AltContactNo
	employee.Email = in.Email
	employee.City = in.City
	employee.Pincode = in.Pincode
	employee.Address = in.Address
	employee.DesignationID = in.DesignationID
	employee.ModifiedDate = &now

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, mapRepoError(err, resourceEmployee)
	}
	s.publish(ctx, events.EventEmployeeUpdated, employee)
	return employee, nil
}

// Delete removes an employee by id.
func (s *EmployeeService) Delete(ctx context.Context, id int) error {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, resourceEmployee)
	}
	if err := s.employees.Delete(ctx, employee.ID); err != nil {
		return mapRepoError(err, resourceEmployee)
	}
	s.publish(ctx, events.EventEmployeeDeleted, employee)
	return nil
}

// Search runs a filtered, sorted and paged read over employees.
func (s *EmployeeService) Search(ctx context.Context, params SearchParams) (*domain.EmployeePage, error) {
	search := domain.EmployeeSearch{
		Name:       params.Name,
		City:       params.City,
		SortBy:     domain.ParseEmployeeSortField(params.SortBy),
		Descending: params.SortDir == sortDescending,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}
	rows, total, err := s.employees.Search(ctx, search)
	if err != nil {
		return nil, mapRepoError(err, resourceEmployee)
	}
	return &domain.EmployeePage{
		TotalRecords: total,
		Page:         params.Page,
		PageSize:     params.PageSize,
		Data:         rows,
	}, nil
}

// Login returns the first employee, by id, whose email and password both match.
func (s *EmployeeService) Login(ctx context.Context, email, password string) (*domain.Employee, error) {
	candidates, err := s.employees.ListByEmail(ctx, email)
	if err != nil {
		return nil, mapRepoError(err, resourceEmployee)
	}
	for i := range candidates {
		if auth.ComparePassword(candidates[i].PasswordHash, password) == nil {
			return &candidates[i], nil
		}
	}
	return nil, apperrors.NewUnauthorized(msgInvalidLogin)
}

func (s *EmployeeService) ensureUnique(ctx context.Context, contactNo, email string, excludeID int) error {
	exists, err := s.employees.ExistsByContactOrEmail(ctx, contactNo, email, excludeID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if exists {
		return apperrors.NewValidationError(msgDuplicateEmployee, nil)
	}
	return nil
}

func (s *EmployeeService) publish(ctx context.Context, eventType events.EventType, employee *domain.Employee) {
	if s.dispatcher == nil {
		return
	}
	payload := events.EmployeePayload{Name: employee.Name, Email: employee.Email, DesignationID: employee.DesignationID}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, employee.ID, s.clock.Now(), payload))
}
