// Package memory provides process-local implementations of the repository interfaces. Rows live only as
// long as the Store, so it backs local runs without POSTGRES_DSN and the service/handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

// Store holds the three collections behind one lock.
type Store struct {
	mu sync.RWMutex

	departments  []domain.Department
	designations []domain.Designation
	employees    []domain.Employee

	nextDepartmentID  int
	nextDesignationID int
	nextEmployeeID    int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{nextDepartmentID: 1, nextDesignationID: 1, nextEmployeeID: 1}
}

// Departments returns a DepartmentRepository view of the store.
func (s *Store) Departments() repository.DepartmentRepository {
	return departmentRepository{s}
}

// Designations returns a DesignationRepository view of the store.
func (s *Store) Designations() repository.DesignationRepository {
	return designationRepository{s}
}

// Employees returns an EmployeeRepository view of the store.
func (s *Store) Employees() repository.EmployeeRepository {
	return employeeRepository{s}
}

type departmentRepository struct{ s *Store }

func (r departmentRepository) Create(_ context.Context, dept *domain.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	dept.ID = r.s.nextDepartmentID
	r.s.nextDepartmentID++
	r.s.departments = append(r.s.departments, *dept)
	return nil
}

func (r departmentRepository) Update(_ context.Context, dept *domain.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.departments {
		if r.s.departments[i].ID == dept.ID {
			r.s.departments[i] = *dept
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r departmentRepository) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.departments {
		if r.s.departments[i].ID == id {
			r.s.departments = append(r.s.departments[:i], r.s.departments[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r departmentRepository) GetByID(_ context.Context, id int) (*domain.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, dept := range r.s.departments {
		if dept.ID == id {
			return &dept, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r departmentRepository) List(_ context.Context) ([]domain.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.Department{}, r.s.departments...), nil
}

type designationRepository struct{ s *Store }

func (r designationRepository) Create(_ context.Context, designation *domain.Designation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	designation.ID = r.s.nextDesignationID
	r.s.nextDesignationID++
	r.s.designations = append(r.s.designations, *designation)
	return nil
}

func (r designationRepository) Update(_ context.Context, designation *domain.Designation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.designations {
		if r.s.designations[i].ID == designation.ID {
			r.s.designations[i] = *designation
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r designationRepository) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.designations {
		if r.s.designations[i].ID == id {
			r.s.designations = append(r.s.designations[:i], r.s.designations[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r designationRepository) GetByID(_ context.Context, id int) (*domain.Designation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, designation := range r.s.designations {
		if designation.ID == id {
			return &designation, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r designationRepository) List(_ context.Context) ([]domain.Designation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.Designation{}, r.s.designations...), nil
}

type employeeRepository struct{ s *Store }

// checkUnique mirrors the employees_contact_no_key and employees_email_key constraints. Callers hold the lock.
func (r employeeRepository) checkUnique(employee *domain.Employee) error {
	for _, other := range r.s.employees {
		if other.ID == employee.ID {
			continue
		}
		if other.ContactNo == employee.ContactNo {
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, repository.ConstraintEmployeeContactNo)
		}
		if other.Email == employee.Email {
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, repository.ConstraintEmployeeEmail)
		}
	}
	return nil
}

func (r employeeRepository) Create(_ context.Context, employee *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	employee.ID = 0
	if err := r.checkUnique(employee); err != nil {
		return err
	}
	employee.ID = r.s.nextEmployeeID
	r.s.nextEmployeeID++
	r.s.employees = append(r.s.employees, *employee)
	return nil
}

func (r employeeRepository) Update(_ context.Context, employee *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.employees {
		if r.s.employees[i].ID != employee.ID {
			continue
		}
		if err := r.checkUnique(employee); err != nil {
			return err
		}
		stored := &r.s.employees[i]
		stored.Name = employee.Name
		stored.ContactNo = employee.ContactNo
		stored.Email = employee.Email
		stored.City = employee.City
		stored.Pincode = employee.Pincode
		stored.AltContactNo = employee.AltContactNo
		stored.Address = employee.Address
		stored.DesignationID = employee.DesignationID
		stored.ModifiedDate = employee.ModifiedDate
		return nil
	}
	return pgx.ErrNoRows
}

func (r employeeRepository) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.employees {
		if r.s.employees[i].ID == id {
			r.s.employees = append(r.s.employees[:i], r.s.employees[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r employeeRepository) GetByID(_ context.Context, id int) (*domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, employee := range r.s.employees {
		if employee.ID == id {
			return &employee, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r employeeRepository) List(_ context.Context) ([]domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.Employee{}, r.s.employees...), nil
}

func (r employeeRepository) ListByEmail(_ context.Context, email string) ([]domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.Employee{}
	for _, employee := range r.s.employees {
		if employee.Email == email {
			result = append(result, employee)
		}
	}
	return result, nil
}

func (r employeeRepository) ExistsByContactOrEmail(_ context.Context, contactNo, email string, excludeID int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, employee := range r.s.employees {
		if employee.ID == excludeID {
			continue
		}
		if employee.ContactNo == contactNo || employee.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r employeeRepository) Search(_ context.Context, search domain.EmployeeSearch) ([]domain.Employee, int, error) {
	r.s.mu.RLock()
	matched := []domain.Employee{}
	for _, employee := range r.s.employees {
		if search.Name != "" && !strings.Contains(employee.Name, search.Name) {
			continue
		}
		if search.City != "" && !strings.Contains(employee.City, search.City) {
			continue
		}
		matched = append(matched, employee)
	}
	r.s.mu.RUnlock()

	total := len(matched)
	if search.PageSize <= 0 {
		return []domain.Employee{}, total, nil
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if c := compareEmployees(a, b, search.SortBy); c != 0 {
			if search.Descending {
				return c > 0
			}
			return c < 0
		}
		return a.ID < b.ID
	})

	start, ok := search.Offset()
	if !ok || start >= total {
		return []domain.Employee{}, total, nil
	}
	end := start + search.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func compareEmployees(a, b domain.Employee, field domain.EmployeeSortField) int {
	switch field {
	case domain.SortByCity:
		return strings.Compare(a.City, b.City)
	case domain.SortByCreatedDate:
		return a.CreatedDate.Compare(b.CreatedDate)
	default:
		return strings.Compare(a.Name, b.Name)
	}
}
