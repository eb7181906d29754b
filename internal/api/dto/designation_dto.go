package dto

import "github.com/spec-kit/employee-service/internal/domain"

// DesignationRequest payload for create and update.
type DesignationRequest struct {
	DesignationID   int    `json:"designationId"`
	DepartmentID    int    `json:"departmentId"`
	DesignationName string `json:"designationName" validate:"required,max=100"`
}

// DesignationResponse is the wire shape of a designation.
type DesignationResponse struct {
	DesignationID   int    `json:"designationId"`
	DepartmentID    int    `json:"departmentId"`
	DesignationName string `json:"designationName"`
}

func (r DesignationRequest) ToDomain() *domain.Designation {
	return &domain.Designation{ID: r.DesignationID, DepartmentID: r.DepartmentID, Name: r.DesignationName}
}

func NewDesignationResponse(d domain.Designation) DesignationResponse {
	return DesignationResponse{DesignationID: d.ID, DepartmentID: d.DepartmentID, DesignationName: d.Name}
}

func NewDesignationList(list []domain.Designation) []DesignationResponse {
	out := make([]DesignationResponse, 0, len(list))
	for _, d := range list {
		out = append(out, NewDesignationResponse(d))
	}
	return out
}
