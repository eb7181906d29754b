package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// DesignationHandler exposes /api/designation.
type DesignationHandler struct {
	designations *service.DesignationService
}

// NewDesignationHandler constructs handler.
func NewDesignationHandler(designations *service.DesignationService) *DesignationHandler {
	return &DesignationHandler{designations: designations}
}

// List handles GET /api/designation.
func (h *DesignationHandler) List(c *fiber.Ctx) error {
	list, err := h.designations.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDesignationList(list))
}

// Get handles GET /api/designation/:id.
func (h *DesignationHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	designation, err := h.designations.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDesignationResponse(*designation))
}

// Create handles POST /api/designation.
func (h *DesignationHandler) Create(c *fiber.Ctx) error {
	var req dto.DesignationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	designation := req.ToDomain()
	if err := h.designations.Create(c.UserContext(), designation); err != nil {
		return err
	}
	c.Location(fmt.Sprintf("/api/designation/%d", designation.ID))
	return c.Status(http.StatusCreated).JSON(dto.NewDesignationResponse(*designation))
}

// Update handles PUT /api/designation/:id.
func (h *DesignationHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.DesignationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	updated, err := h.designations.Update(c.UserContext(), id, req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDesignationResponse(*updated))
}

// Delete handles DELETE /api/designation/:id.
func (h *DesignationHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.designations.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendString("Designation deleted successfully")
}
