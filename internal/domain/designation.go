package domain

// Designation is a job title defined under a department. DepartmentID is not checked against departments.
type Designation struct {
	ID           int
	DepartmentID int
	Name         string
}
