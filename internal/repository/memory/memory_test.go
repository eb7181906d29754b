package memory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

func seedEmployees(t *testing.T, repo repository.EmployeeRepository) {
	t.Helper()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rows := []domain.Employee{
		{Name: "Joanne", City: "Berlin", ContactNo: "100", Email: "joanne@example.com"},
		{Name: "Marianne", City: "Oslo", ContactNo: "101", Email: "marianne@example.com"},
		{Name: "Hannah", City: "Austin", ContactNo: "102", Email: "hannah@example.com"},
		{Name: "Suzanne", City: "Paris", ContactNo: "103", Email: "suzanne@example.com"},
		{Name: "Leanne", City: "Cairo", ContactNo: "104", Email: "leanne@example.com"},
		{Name: "Bob", City: "Oslo", ContactNo: "105", Email: "bob@example.com"},
	}
	for i := range rows {
		rows[i].CreatedDate = base.Add(time.Duration(len(rows)-i) * time.Hour)
		require.NoError(t, repo.Create(context.Background(), &rows[i]))
	}
}

func TestEmployeeSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Employees()
	seedEmployees(t, repo)

	t.Run("filter sort and page", func(t *testing.T) {
		rows, total, err := repo.Search(ctx, domain.EmployeeSearch{
			Name: "ann", SortBy: domain.SortByCity, Descending: true, Page: 1, PageSize: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, rows, 2)
		assert.Equal(t, "Paris", rows[0].City)
		assert.Equal(t, "Oslo", rows[1].City)
	})

	t.Run("second page", func(t *testing.T) {
		rows, total, err := repo.Search(ctx, domain.EmployeeSearch{
			Name: "ann", SortBy: domain.SortByCity, Descending: true, Page: 2, PageSize: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, rows, 2)
		assert.Equal(t, "Cairo", rows[0].City)
		assert.Equal(t, "Berlin", rows[1].City)
	})

	t.Run("created date ascending", func(t *testing.T) {
		rows, _, err := repo.Search(ctx, domain.EmployeeSearch{SortBy: domain.SortByCreatedDate, Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, rows, 6)
		assert.Equal(t, "Bob", rows[0].Name)
		assert.Equal(t, "Joanne", rows[5].Name)
	})

	t.Run("city filter is case sensitive", func(t *testing.T) {
		rows, total, err := repo.Search(ctx, domain.EmployeeSearch{City: "oslo", SortBy: domain.SortByName, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, rows)
	})

	t.Run("non-positive page size yields empty page with total", func(t *testing.T) {
		rows, total, err := repo.Search(ctx, domain.EmployeeSearch{SortBy: domain.SortByName, Page: 1, PageSize: 0})
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		assert.Empty(t, rows)
	})

	t.Run("offset overflowing int yields empty page", func(t *testing.T) {
		rows, total, err := repo.Search(ctx, domain.EmployeeSearch{SortBy: domain.SortByName, Page: 3, PageSize: math.MaxInt})
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		assert.Empty(t, rows)
	})

	t.Run("page past the end", func(t *testing.T) {
		rows, total, err := repo.Search(ctx, domain.EmployeeSearch{SortBy: domain.SortByName, Page: 9, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		assert.Empty(t, rows)
	})
}

func TestEmployeeUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Employees()

	first := &domain.Employee{Name: "A", ContactNo: "1", Email: "a@example.com"}
	second := &domain.Employee{Name: "B", ContactNo: "2", Email: "b@example.com"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	err := repo.Create(ctx, &domain.Employee{Name: "C", ContactNo: "1", Email: "c@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	second.Email = "a@example.com"
	assert.ErrorIs(t, repo.Update(ctx, second), repository.ErrDuplicate)

	second.Email = "b@example.com"
	second.City = "Rome"
	require.NoError(t, repo.Update(ctx, second))

	exists, err := repo.ExistsByContactOrEmail(ctx, "2", "nobody@example.com", 2)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByContactOrEmail(ctx, "2", "nobody@example.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDepartmentDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Departments()
	for _, name := range []string{"HR", "IT", "Ops"} {
		require.NoError(t, repo.Create(ctx, &domain.Department{Name: name, IsActive: true}))
	}

	assert.ErrorIs(t, repo.Delete(ctx, 42), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, 2))

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "HR", rows[0].Name)
	assert.Equal(t, "Ops", rows[1].Name)
}
