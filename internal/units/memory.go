package units

import (
	"context"
	"sort"
	"sync"

	"github.com/asnhub/asndash/internal/common"
)

// MemoryRepository is a map-backed Repository for tests and ephemeral use.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]*Unit
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string]*Unit)}
}

func (r *MemoryRepository) Create(ctx context.Context, u *Unit) (*Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[u.ID]; ok {
		return nil, common.ErrorConflict
	}
	c := *u
	r.data[u.ID] = &c
	return u, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.data[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r *MemoryRepository) GetByCode(ctx context.Context, code string) (*Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.data {
		if u.Code == code {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Update(ctx context.Context, u *Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[u.ID]; !ok {
		return common.ErrorNotFound
	}
	c := *u
	r.data[u.ID] = &c
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Unit, 0, len(r.data))
	for _, u := range r.data {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
