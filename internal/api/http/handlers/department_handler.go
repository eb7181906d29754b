package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// DepartmentHandler exposes /api/department.
type DepartmentHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentHandler constructs handler.
func NewDepartmentHandler(departments *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

// List handles GET /api/department.
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	list, err := h.departments.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentList(list))
}

// Create handles POST /api/department. Replies with a confirmation, not the entity.
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := h.departments.Create(c.UserContext(), req.ToDomain()); err != nil {
		return err
	}
	return c.SendString("Department added successfully")
}

// Update handles PUT /api/department/:id. The department is identified by the body's departmentId.
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if _, err := h.departments.Update(c.UserContext(), req.ToDomain()); err != nil {
		return err
	}
	return c.SendString("Department updated successfully!")
}

// Delete handles DELETE /api/department/:id.
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.departments.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendString("Department deleted successfully")
}
