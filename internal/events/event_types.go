package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDepartmentCreated  EventType = "department_created"
	EventDepartmentUpdated  EventType = "department_updated"
	EventDepartmentDeleted  EventType = "department_deleted"
	EventDesignationCreated EventType = "designation_created"
	EventDesignationUpdated EventType = "designation_updated"
	EventDesignationDeleted EventType = "designation_deleted"
	EventEmployeeCreated    EventType = "employee_created"
	EventEmployeeUpdated    EventType = "employee_updated"
	EventEmployeeDeleted    EventType = "employee_deleted"
)

// AllEventTypes lists every event type in publication order of the resources.
var AllEventTypes = []EventType{
	EventDepartmentCreated, EventDepartmentUpdated, EventDepartmentDeleted,
	EventDesignationCreated, EventDesignationUpdated, EventDesignationDeleted,
	EventEmployeeCreated, EventEmployeeUpdated, EventEmployeeDeleted,
}

// Event represents a change to one stored entity.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID int         `json:"resource_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload,omitempty"`
}

// DepartmentPayload payload.
type DepartmentPayload struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// DesignationPayload payload.
type DesignationPayload struct {
	DepartmentID int    `json:"department_id"`
	Name         string `json:"name"`
}

// EmployeePayload carries the non-sensitive employee fields.
type EmployeePayload struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	DesignationID int    `json:"designation_id"`
}
