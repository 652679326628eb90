package units

import "context"

type Repository interface {
	Create(ctx context.Context, u *Unit) (*Unit, error)
	GetByID(ctx context.Context, id string) (*Unit, error)
	GetByCode(ctx context.Context, code string) (*Unit, error)
	Update(ctx context.Context, u *Unit) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Unit, error)
}
