package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/service"
)

// DepartmentsHandler exposes department CRUD.
type DepartmentsHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departments *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{departments: departments}
}

// List handles GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}
	items, err := h.departments.List(c.UserContext(), sess.Departments(), p, page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentListResponse(items)})
}

// Get handles GET /departments/:id.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}
	dept, err := h.departments.Get(c.UserContext(), sess.Departments(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(dept)})
}

// Employees handles GET /departments/:id/employees.
func (h *DepartmentsHandler) Employees(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}
	items, err := h.departments.ListEmployees(c.UserContext(), sess.Departments(), sess.Employees(), p, id, page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeListResponse(items)})
}

// Create handles POST /departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}
	dept, err := h.departments.Create(c.UserContext(), sess.Departments(), p, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewDepartmentResponse(dept)})
}

// Update handles PUT /departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}
	dept, err := h.departments.Update(c.UserContext(), sess.Departments(), p, id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(dept)})
}

// Delete handles DELETE /departments/:id.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}
	dept, err := h.departments.Delete(c.UserContext(), sess.Departments(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(dept)})
}
