// Package repomanager wires the concrete repositories for one storage
// backend behind a single constructor.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/asnhub/asndash/internal/dashboard"
	"github.com/asnhub/asndash/internal/employees"
	"github.com/asnhub/asndash/internal/units"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Employees() employees.Repository
	Units() units.Repository
	Dashboard() dashboard.Repository
	RunMigrations(ctx context.Context) error
}
