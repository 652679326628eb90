package repomanager

import (
	"context"
	"database/sql"

	"github.com/asnhub/asndash/internal/dashboard"
	"github.com/asnhub/asndash/internal/employees"
	"github.com/asnhub/asndash/internal/units"
)

// MemoryRepositoryManager backs all repositories with in-memory maps. Used
// by tests and demo deployments with no database.
type MemoryRepositoryManager struct {
	employees employees.Repository
	units     units.Repository
	dashboard dashboard.Repository
}

func (m *MemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Employees() employees.Repository {
	return m.employees
}

func (m *MemoryRepositoryManager) Units() units.Repository {
	return m.units
}

func (m *MemoryRepositoryManager) Dashboard() dashboard.Repository {
	return m.dashboard
}

func NewMemoryRepositoryManager() RepositoryManager {
	e := employees.NewMemoryRepository()
	u := units.NewMemoryRepository()
	return &MemoryRepositoryManager{
		employees: e,
		units:     u,
		dashboard: dashboard.NewMemoryRepository(e, u),
	}
}
