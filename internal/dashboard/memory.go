package dashboard

import (
	"context"
	"time"

	"github.com/asnhub/asndash/internal/employees"
	"github.com/asnhub/asndash/internal/units"
)

// MemoryRepository computes statistics by scanning the employee and unit
// repositories. It backs tests and the in-memory deployment mode.
type MemoryRepository struct {
	employees employees.Repository
	units     units.Repository
	now       func() time.Time
}

func NewMemoryRepository(e employees.Repository, u units.Repository) *MemoryRepository {
	return &MemoryRepository{employees: e, units: u, now: time.Now}
}

func (r *MemoryRepository) Collect(ctx context.Context) (*Stats, error) {
	all, err := r.employees.List(ctx, employees.Filter{})
	if err != nil {
		return nil, err
	}
	unitList, err := r.units.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalEmployees:   len(all),
		TotalUnits:       len(unitList),
		ByStatus:         make(map[string]int),
		ByEmploymentType: make(map[string]int),
		ByGender:         make(map[string]int),
		ByRank:           make(map[string]int),
		ByUnit:           make(map[string]int),
	}

	cutoff := r.now().AddDate(0, 0, -recentHireWindowDays)
	for _, e := range all {
		stats.ByStatus[e.Status]++
		stats.ByEmploymentType[e.EmploymentType]++
		stats.ByGender[e.Gender]++
		stats.ByRank[e.Rank]++
		stats.ByUnit[e.UnitID]++
		if e.HireDate.After(cutoff) {
			stats.RecentHires++
		}
	}

	return stats, nil
}
