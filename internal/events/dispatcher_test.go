package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventEmployeeCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+string(e.Type))
		return errors.New("ignored")
	})
	d.Subscribe(EventEmployeeCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+string(e.Type))
		return nil
	})
	d.Subscribe(EventEmployeeDeleted, func(_ context.Context, e Event) error {
		got = append(got, "deleted")
		return nil
	})

	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, d.Publish(context.Background(), NewEvent(EventEmployeeCreated, 7, at, nil)))

	assert.Equal(t, []string{"first:employee_created", "second:employee_created"}, got)
}

func TestNewEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	a := NewEvent(EventDepartmentCreated, 3, at, DepartmentPayload{Name: "HR"})
	b := NewEvent(EventDepartmentCreated, 3, at, nil)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 3, a.ResourceID)
	assert.Equal(t, at, a.Timestamp)
}
