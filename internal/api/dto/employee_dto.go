package dto

import (
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/service"
)

// EmployeeRequest payload for create and update. Password is ignored on update.
type EmployeeRequest struct {
	EmployeeID    int    `json:"employeeId"`
	Name          string `json:"name" validate:"required,max=100"`
	ContactNo     string `json:"contactNo" validate:"required,max=15"`
	Email         string `json:"email" validate:"required,email,max=150"`
	City          string `json:"city" validate:"max=50"`
	Pincode       string `json:"pincode" validate:"max=10"`
	AltContactNo  string `json:"altContactNo" validate:"max=15"`
	Address       string `json:"address" validate:"max=250"`
	DesignationID int    `json:"designationId" validate:"required"`
	Password      string `json:"password"`
}

// EmployeeResponse is the wire shape of an employee. The password never leaves the service.
type EmployeeResponse struct {
	EmployeeID    int        `json:"employeeId"`
	Name          string     `json:"name"`
	ContactNo     string     `json:"contactNo"`
	Email         string     `json:"email"`
	City          string     `json:"city"`
	Pincode       string     `json:"pincode"`
	AltContactNo  string     `json:"altContactNo"`
	Address       string     `json:"address"`
	DesignationID int        `json:"designationId"`
	CreatedDate   time.Time  `json:"createdDate"`
	ModifiedDate  *time.Time `json:"modifiedDate"`
}

// EmployeeSearchResponse is the paged search envelope.
type EmployeeSearchResponse struct {
	TotalRecords int                `json:"totalRecords"`
	Page         int                `json:"page"`
	PageSize     int                `json:"pageSize"`
	Data         []EmployeeResponse `json:"data"`
}

// LoginRequest payload for POST /api/employee/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the projection returned on a successful login.
type LoginResponse struct {
	EmployeeID    int    `json:"employeeId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	DesignationID int    `json:"designationId"`
}

// ToInput converts the request to service input.
func (r EmployeeRequest) ToInput() service.EmployeeInput {
	return service.EmployeeInput{
		Name:          r.Name,
		ContactNo:     r.ContactNo,
		Email:         r.Email,
		City:          r.City,
		Pincode:       r.Pincode,
		AltContactNo:  r.AltContactNo,
		Address:       r.Address,
		DesignationID: r.DesignationID,
		Password:      r.Password,
	}
}

func NewEmployeeResponse(e domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:    e.ID,
		Name:          e.Name,
		ContactNo:     e.ContactNo,
		Email:         e.Email,
		City:          e.City,
		Pincode:       e.Pincode,
		AltContactNo:  e.AltContactNo,
		Address:       e.Address,
		DesignationID: e.DesignationID,
		CreatedDate:   e.CreatedDate,
		ModifiedDate:  e.ModifiedDate,
	}
}

func NewEmployeeList(list []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, NewEmployeeResponse(e))
	}
	return out
}

func NewEmployeeSearchResponse(page *domain.EmployeePage) EmployeeSearchResponse {
	return EmployeeSearchResponse{
		TotalRecords: page.TotalRecords,
		Page:         page.Page,
		PageSize:     page.PageSize,
		Data:         NewEmployeeList(page.Data),
	}
}

func NewLoginResponse(e domain.Employee) LoginResponse {
	return LoginResponse{EmployeeID: e.ID, Name: e.Name, Email: e.Email, DesignationID: e.DesignationID}
}
