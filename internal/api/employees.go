package api

import (
	"time"

	"github.com/asnhub/asndash/internal/employees"
	"github.com/gofiber/fiber/v2"
)

type employeeRequest struct {
	NIP            string `json:"nip"`
	Name           string `json:"name"`
	BirthPlace     string `json:"birth_place"`
	BirthDate      string `json:"birth_date"`
	Gender         string `json:"gender"`
	Rank           string `json:"rank"`
	Position       string `json:"position"`
	UnitID         string `json:"unit_id"`
	EmploymentType string `json:"employment_type"`
	Status         string `json:"status"`
	HireDate       string `json:"hire_date"`
}

func (r *employeeRequest) toEmployee(id string) (*employees.Employee, error) {
	parseDate := func(s string) (time.Time, error) {
		if s == "" {
			return time.Time{}, nil
		}
		return time.Parse("2006-01-02", s)
	}

	birth, err := parseDate(r.BirthDate)
	if err != nil {
		return nil, err
	}
	hire, err := parseDate(r.HireDate)
	if err != nil {
		return nil, err
	}

	return &employees.Employee{
		ID:             id,
		NIP:            r.NIP,
		Name:           r.Name,
		BirthPlace:     r.BirthPlace,
		BirthDate:      birth,
		Gender:         r.Gender,
		Rank:           r.Rank,
		Position:       r.Position,
		UnitID:         r.UnitID,
		EmploymentType: r.EmploymentType,
		Status:         r.Status,
		HireDate:       hire,
	}, nil
}

func employeeFilterFromQuery(c *fiber.Ctx) employees.Filter {
	return employees.Filter{
		UnitID:         c.Query("unit_id"),
		Status:         c.Query("status"),
		Rank:           c.Query("rank"),
		EmploymentType: c.Query("employment_type"),
		Search:         c.Query("search"),
		Limit:          c.QueryInt("limit", 50),
		Offset:         c.QueryInt("offset", 0),
	}
}

// ListEmployees returns a filtered page of employees plus the total count.
func ListEmployees(svc *employees.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, total, err := svc.List(c.Context(), employeeFilterFromQuery(c))
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, fiber.Map{"items": list, "total": total})
	}
}

// GetEmployee returns one employee by id.
func GetEmployee(svc *employees.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		e, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, e)
	}
}

// CreateEmployee creates an employee record.
func CreateEmployee(svc *employees.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req employeeRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		e, err := req.toEmployee("")
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		}

		created, err := svc.Create(c.Context(), e)
		if err != nil {
			return failErr(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
	}
}

// UpdateEmployee replaces an employee record by id.
func UpdateEmployee(svc *employees.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req employeeRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		e, err := req.toEmployee(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		}

		updated, err := svc.Update(c.Context(), e)
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, updated)
	}
}

// DeleteEmployee removes an employee record by id.
func DeleteEmployee(svc *employees.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return failErr(c, err)
		}
		return ok(c, nil)
	}
}
