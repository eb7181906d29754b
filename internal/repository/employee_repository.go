package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EmployeeRepository handles persistence for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	// ListByEmail returns every employee with the given email ordered by id.
	ListByEmail(ctx context.Context, email string) ([]domain.Employee, error)
	// ExistsByContactOrEmail reports whether an employee other than excludeID uses contactNo or email.
	// An excludeID of zero excludes nothing.
	ExistsByContactOrEmail(ctx context.Context, contactNo, email string, excludeID int) (bool, error)
	Search(ctx context.Context, search domain.EmployeeSearch) ([]domain.Employee, int, error)
}

const employeeColumns = `id, name, contact_no, email, city, pincode, alt_contact_no, address,
               designation_id, created_date, modified_date, password_hash`

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, contact_no, email, city, pincode, alt_contact_no, address,
                               designation_id, created_date, modified_date, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		employee.Name,
		employee.ContactNo,
		employee.Email,
		employee.City,
		employee.Pincode,
		employee.AltContactNo,
		employee.Address,
		employee.DesignationID,
		employee.CreatedDate,
		employee.ModifiedDate,
		employee.PasswordHash,
	).Scan(&employee.ID)
	return translateWriteError(err)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees
        SET name=$1, contact_no=$2, email=$3, city=$4, pincode=$5, alt_contact_no=$6, address=$7,
            designation_id=$8, modified_date=$9
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		employee.Name,
		employee.ContactNo,
		employee.Email,
		employee.City,
		employee.Pincode,
		employee.AltContactNo,
		employee.Address,
		employee.DesignationID,
		employee.ModifiedDate,
		employee.ID,
	)
	if err != nil {
		return translateWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`

	employee, err := scanEmployee(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (r *employeeRepository) ListByEmail(ctx context.Context, email string) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (r *employeeRepository) ExistsByContactOrEmail(ctx context.Context, contactNo, email string, excludeID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS(SELECT 1 FROM employees WHERE (contact_no=$1 OR email=$2) AND id<>$3)`,
		contactNo, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check employee uniqueness: %w", err)
	}
	return exists, nil
}

func (r *employeeRepository) Search(ctx context.Context, search domain.EmployeeSearch) ([]domain.Employee, int, error) {
	where, args := employeeSearchWhere(search)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}
	if _, ok := search.Offset(); !ok || search.PageSize <= 0 || total == 0 {
		return []domain.Employee{}, total, nil
	}

	query, args := employeeSearchQuery(search)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search employees: %w", err)
	}
	defer rows.Close()

	employees, err := scanEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// employeeSearchWhere renders the filter part of a search, including the leading " WHERE" when non-empty.
func employeeSearchWhere(search domain.EmployeeSearch) (string, []any) {
	args := []any{}
	clauses := []string{}

	if search.Name != "" {
		args = append(args, "%"+escapeLike(search.Name)+"%")
		clauses = append(clauses, fmt.Sprintf(`name LIKE $%d ESCAPE '\'`, len(args)))
	}
	if search.City != "" {
		args = append(args, "%"+escapeLike(search.City)+"%")
		clauses = append(clauses, fmt.Sprintf(`city LIKE $%d ESCAPE '\'`, len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// employeeSearchQuery renders the paged select of a search.
func employeeSearchQuery(search domain.EmployeeSearch) (string, []any) {
	where, args := employeeSearchWhere(search)

	column := "name"
	switch search.SortBy {
	case domain.SortByCity:
		column = "city"
	case domain.SortByCreatedDate:
		column = "created_date"
	}
	direction := "ASC"
	if search.Descending {
		direction = "DESC"
	}

	offset, _ := search.Offset()
	args = append(args, search.PageSize, offset)
	query := fmt.Sprintf(`SELECT %s FROM employees%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d`,
		employeeColumns, where, column, direction, len(args)-1, len(args))
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	if err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.ContactNo,
		&employee.Email,
		&employee.City,
		&employee.Pincode,
		&employee.AltContactNo,
		&employee.Address,
		&employee.DesignationID,
		&employee.CreatedDate,
		&employee.ModifiedDate,
		&employee.PasswordHash,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func scanEmployees(rows pgx.Rows) ([]domain.Employee, error) {
	result := []domain.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *employee)
	}
	return result, rows.Err()
}
