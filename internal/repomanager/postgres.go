package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asnhub/asndash/internal/dashboard"
	"github.com/asnhub/asndash/internal/employees"
	"github.com/asnhub/asndash/internal/repomanager/migrations"
	"github.com/asnhub/asndash/internal/units"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	employees employees.Repository
	units     units.Repository
	dashboard dashboard.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Employees() employees.Repository {
	return m.employees
}

func (m *PostgresRepositoryManager) Units() units.Repository {
	return m.units
}

func (m *PostgresRepositoryManager) Dashboard() dashboard.Repository {
	return m.dashboard
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, m.db, ".")
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		employees: employees.NewPostgresRepository(db),
		units:     units.NewPostgresRepository(db),
		dashboard: dashboard.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
