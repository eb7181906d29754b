package dto

import "github.com/spec-kit/employee-service/internal/domain"

// DepartmentRequest payload for create and update. The id is read from the body on update.
type DepartmentRequest struct {
	DepartmentID   int    `json:"departmentId"`
	DepartmentName string `json:"departmentName" validate:"required,max=50"`
	IsActive       bool   `json:"isActive"`
}

// DepartmentResponse is the wire shape of a department.
type DepartmentResponse struct {
	DepartmentID   int    `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	IsActive       bool   `json:"isActive"`
}

// ToDomain converts the request.
func (r DepartmentRequest) ToDomain() *domain.Department {
	return &domain.Department{ID: r.DepartmentID, Name: r.DepartmentName, IsActive: r.IsActive}
}

// NewDepartmentResponse maps a department.
func NewDepartmentResponse(d domain.Department) DepartmentResponse {
	return DepartmentResponse{DepartmentID: d.ID, DepartmentName: d.Name, IsActive: d.IsActive}
}

// NewDepartmentList maps a slice, never returning nil.
func NewDepartmentList(list []domain.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, NewDepartmentResponse(d))
	}
	return out
}
