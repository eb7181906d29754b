package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// EmployeeHandler exposes /api/employee including search and login.
type EmployeeHandler struct {
	employees       *service.EmployeeService
	defaultPageSize int
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(employees *service.EmployeeService, defaultPageSize int) *EmployeeHandler {
	if defaultPageSize == 0 {
		defaultPageSize = 10
	}
	return &EmployeeHandler{employees: employees, defaultPageSize: defaultPageSize}
}

// List handles GET /api/employee.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	list, err := h.employees.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeList(list))
}

// Get handles GET /api/employee/:id.
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	employee, err := h.employees.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(*employee))
}

// Create handles POST /api/employee.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	employee, err := h.employees.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	c.Location(fmt.Sprintf("/api/employee/%d", employee.ID))
	return c.Status(http.StatusCreated).JSON(dto.NewEmployeeResponse(*employee))
}

// Update handles PUT /api/employee/:id.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.EmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	updated, err := h.employees.Update(c.UserContext(), id, req.EmployeeID, req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(*updated))
}

// Delete handles DELETE /api/employee/:id.
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.employees.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendString("Employee deleted successfully")
}

// Search handles GET /api/employee/search.
func (h *EmployeeHandler) Search(c *fiber.Ctx) error {
	params := service.SearchParams{
		Name:     c.Query("name"),
		City:     c.Query("city"),
		SortBy:   c.Query("sortBy", "name"),
		SortDir:  c.Query("sortDir", "asc"),
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "pageSize", h.defaultPageSize),
	}
	page, err := h.employees.Search(c.UserContext(), params)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeSearchResponse(page))
}

// Login handles POST /api/employee/login.
func (h *EmployeeHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	employee, err := h.employees.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewLoginResponse(*employee))
}
