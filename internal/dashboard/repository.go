package dashboard

import "context"

// Stats is the aggregate snapshot shown on the dashboard landing page.
type Stats struct {
	TotalEmployees   int            `json:"total_employees"`
	TotalUnits       int            `json:"total_units"`
	ByStatus         map[string]int `json:"by_status"`
	ByEmploymentType map[string]int `json:"by_employment_type"`
	ByGender         map[string]int `json:"by_gender"`
	ByRank           map[string]int `json:"by_rank"`
	ByUnit           map[string]int `json:"by_unit"` // unit id -> employee count
	RecentHires      int            `json:"recent_hires"`
}

// recentHireWindowDays bounds the RecentHires count.
const recentHireWindowDays = 30

type Repository interface {
	Collect(ctx context.Context) (*Stats, error)
}
