// Package employees manages ASN personnel records: repository interfaces
// over Postgres and memory backends, and the validation service the REST
// layer talks to.
package employees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asnhub/asndash/internal/common"
	"github.com/google/uuid"
)

const nipLength = 18

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func validNIP(nip string) bool {
	if len(nip) != nipLength {
		return false
	}
	for _, c := range nip {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (s *Service) validate(e *Employee) error {
	if !validNIP(e.NIP) {
		return fmt.Errorf("%w: NIP must be %d digits", common.ErrorInvalidInput, nipLength)
	}
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorInvalidInput)
	}
	switch e.EmploymentType {
	case TypePNS, TypePPPK:
	default:
		return fmt.Errorf("%w: employment type must be %s or %s", common.ErrorInvalidInput, TypePNS, TypePPPK)
	}
	switch e.Status {
	case StatusActive, StatusTransferred, StatusRetired:
	default:
		return fmt.Errorf("%w: unknown status %q", common.ErrorInvalidInput, e.Status)
	}
	return nil
}

// Create registers a new employee record. NIP collisions are reported as
// common.ErrorConflict.
func (s *Service) Create(ctx context.Context, e *Employee) (*Employee, error) {
	if e.Status == "" {
		e.Status = StatusActive
	}
	if err := s.validate(e); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByNIP(ctx, e.NIP); err == nil {
		return nil, fmt.Errorf("%w: NIP %s", common.ErrorConflict, e.NIP)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	e.ID = uuid.NewString()
	e.CreatedAt = s.now()
	e.UpdatedAt = e.CreatedAt
	return s.repo.Create(ctx, e)
}

func (s *Service) Get(ctx context.Context, id string) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces the record's mutable fields. The NIP may change but must
// stay unique.
func (s *Service) Update(ctx context.Context, e *Employee) (*Employee, error) {
	if err := s.validate(e); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	if e.NIP != existing.NIP {
		if other, err := s.repo.GetByNIP(ctx, e.NIP); err == nil && other.ID != e.ID {
			return nil, fmt.Errorf("%w: NIP %s", common.ErrorConflict, e.NIP)
		} else if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
	}

	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns a page of employees plus the unpaged total for the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]*Employee, int, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	count := Filter{
		UnitID:         f.UnitID,
		Status:         f.Status,
		Rank:           f.Rank,
		EmploymentType: f.EmploymentType,
		Search:         f.Search,
	}
	total, err := s.repo.Count(ctx, count)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*Employee{}
	}
	return items, total, nil
}
