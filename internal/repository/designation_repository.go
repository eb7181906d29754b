package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// DesignationRepository manages persistence for designations.
type DesignationRepository interface {
	Create(ctx context.Context, designation *domain.Designation) error
	Update(ctx context.Context, designation *domain.Designation) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*domain.Designation, error)
	List(ctx context.Context) ([]domain.Designation, error)
}

type designationRepository struct {
	pool *pgxpool.Pool
}

// NewDesignationRepository constructs repository.
func NewDesignationRepository(pool *pgxpool.Pool) DesignationRepository {
	return &designationRepository{pool: pool}
}

func (r *designationRepository) Create(ctx context.Context, designation *domain.Designation) error {
	const query = `
        INSERT INTO designations (department_id, name)
        VALUES ($1,$2)
        RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		designation.DepartmentID,
		designation.Name,
	).Scan(&designation.ID)
	return translateWriteError(err)
}

func (r *designationRepository) Update(ctx context.Context, designation *domain.Designation) error {
	const query = `
        UPDATE designations SET department_id=$1, name=$2
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query,
		designation.DepartmentID,
		designation.Name,
		designation.ID,
	)
	if err != nil {
		return translateWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *designationRepository) Delete(ctx context.Context, id int) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM designations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *designationRepository) GetByID(ctx context.Context, id int) (*domain.Designation, error) {
	const query = `
        SELECT id, department_id, name
        FROM designations WHERE id=$1`
	var designation domain.Designation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&designation.ID,
		&designation.DepartmentID,
		&designation.Name,
	); err != nil {
		return nil, err
	}
	return &designation, nil
}

func (r *designationRepository) List(ctx context.Context) ([]domain.Designation, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, department_id, name FROM designations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Designation{}
	for rows.Next() {
		var designation domain.Designation
		if err := rows.Scan(&designation.ID, &designation.DepartmentID, &designation.Name); err != nil {
			return nil, err
		}
		result = append(result, designation)
	}
	return result, rows.Err()
}
