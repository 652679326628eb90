package employees

import "context"

// Filter narrows List/Count results. Zero-valued fields are ignored.
// Search matches name or NIP substrings.
type Filter struct {
	UnitID         string
	Status         string
	Rank           string
	EmploymentType string
	Search         string
	Limit          int
	Offset         int
}

type Repository interface {
	Create(ctx context.Context, e *Employee) (*Employee, error)
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByNIP(ctx context.Context, nip string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*Employee, error)
	Count(ctx context.Context, f Filter) (int, error)
	CountByUnit(ctx context.Context, unitID string) (int, error)
}
