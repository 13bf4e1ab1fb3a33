package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/service"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// EmployeesHandler exposes employee CRUD.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// List handles GET /employees?skip&limit&department_id.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	var departmentID *int64
	if c.Query("department_id") != "" {
		v, err := queryInt(c, "department_id")
		if err != nil {
			return err
		}
		id := int64(v)
		departmentID = &id
	}
	sess, err := session(c)
	if err != nil {
		return err
	}

	items, err := h.employees.List(c.UserContext(), sess.Employees(), p, departmentID, page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeListResponse(items)})
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
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

	emp, err := h.employees.Get(c.UserContext(), sess.Employees(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(emp)})
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	input, err := employeeInput(c)
	if err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}

	emp, err := h.employees.Create(c.UserContext(), sess.Employees(), p, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewEmployeeResponse(emp)})
}

// Update handles PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	input, err := employeeInput(c)
	if err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}

	emp, err := h.employees.Update(c.UserContext(), sess.Employees(), p, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(emp)})
}

// Delete handles DELETE /employees/:id and returns the removed record.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
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

	emp, err := h.employees.Delete(c.UserContext(), sess.Employees(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(emp)})
}

func employeeInput(c *fiber.Ctx) (service.EmployeeInput, error) {
	var req dto.EmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return service.EmployeeInput{}, err
	}
	joined, err := req.JoinedDate()
	if err != nil {
		return service.EmployeeInput{}, apperrors.NewValidationError("invalid date_joined", map[string]any{"field": "date_joined"})
	}
	return service.EmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		Position:     req.Position,
		DateJoined:   joined,
		DepartmentID: req.DepartmentID,
		Username:     req.Username,
	}, nil
}
