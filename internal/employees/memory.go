package employees

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/asnhub/asndash/internal/common"
)

// MemoryRepository is a map-backed Repository for tests and ephemeral use.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]*Employee
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string]*Employee)}
}

func (r *MemoryRepository) Create(ctx context.Context, e *Employee) (*Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[e.ID]; ok {
		return nil, common.ErrorConflict
	}
	c := *e
	r.data[e.ID] = &c
	return e, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.data[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *e
	return &c, nil
}

func (r *MemoryRepository) GetByNIP(ctx context.Context, nip string) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.data {
		if e.NIP == nip {
			c := *e
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Update(ctx context.Context, e *Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[e.ID]; !ok {
		return common.ErrorNotFound
	}
	c := *e
	r.data[e.ID] = &c
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

func matches(e *Employee, f Filter) bool {
	if f.UnitID != "" && e.UnitID != f.UnitID {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.Rank != "" && e.Rank != f.Rank {
		return false
	}
	if f.EmploymentType != "" && e.EmploymentType != f.EmploymentType {
		return false
	}
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Name), s) && !strings.Contains(e.NIP, f.Search) {
			return false
		}
	}
	return true
}

func (r *MemoryRepository) List(ctx context.Context, f Filter) ([]*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Employee
	for _, e := range r.data {
		if matches(e, f) {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MemoryRepository) Count(ctx context.Context, f Filter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, e := range r.data {
		if matches(e, f) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) CountByUnit(ctx context.Context, unitID string) (int, error) {
	return r.Count(ctx, Filter{UnitID: unitID})
}
