// Package units manages organizational work units.
package units

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asnhub/asndash/internal/common"
	"github.com/google/uuid"
)

// EmployeeCounter reports how many employees reference a unit. The employees
// repository satisfies this; the indirection avoids a package cycle.
type EmployeeCounter interface {
	CountByUnit(ctx context.Context, unitID string) (int, error)
}

type Service struct {
	repo      Repository
	employees EmployeeCounter
	now       func() time.Time
}

func NewService(repo Repository, employees EmployeeCounter) *Service {
	return &Service{repo: repo, employees: employees, now: time.Now}
}

func (s *Service) validate(u *Unit) error {
	if u.Code == "" {
		return fmt.Errorf("%w: code is required", common.ErrorInvalidInput)
	}
	if u.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorInvalidInput)
	}
	return nil
}

// Create registers a new unit. Code collisions are reported as
// common.ErrorConflict.
func (s *Service) Create(ctx context.Context, u *Unit) (*Unit, error) {
	if err := s.validate(u); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByCode(ctx, u.Code); err == nil {
		return nil, fmt.Errorf("%w: code %s", common.ErrorConflict, u.Code)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	u.ID = uuid.NewString()
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	return s.repo.Create(ctx, u)
}

func (s *Service) Get(ctx context.Context, id string) (*Unit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, u *Unit) (*Unit, error) {
	if err := s.validate(u); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	if u.Code != existing.Code {
		if other, err := s.repo.GetByCode(ctx, u.Code); err == nil && other.ID != u.ID {
			return nil, fmt.Errorf("%w: code %s", common.ErrorConflict, u.Code)
		} else if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
	}

	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a unit. Units still referenced by employees cannot be
// deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.employees.CountByUnit(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d employees assigned", common.ErrorUnitInUse, n)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Unit, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Unit{}
	}
	return items, nil
}
