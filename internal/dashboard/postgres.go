package dashboard

import (
	"context"
	"fmt"

	"github.com/asnhub/asndash/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) groupCount(ctx context.Context, column string) (map[string]int, error) {
	// column comes from a fixed set of callers, never user input
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM employees GROUP BY %s`, column, column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) scalar(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalEmployees, err = r.scalar(ctx, `SELECT COUNT(*) FROM employees`); err != nil {
		return nil, err
	}
	if stats.TotalUnits, err = r.scalar(ctx, `SELECT COUNT(*) FROM units`); err != nil {
		return nil, err
	}
	if stats.ByStatus, err = r.groupCount(ctx, "status"); err != nil {
		return nil, err
	}
	if stats.ByEmploymentType, err = r.groupCount(ctx, "employment_type"); err != nil {
		return nil, err
	}
	if stats.ByGender, err = r.groupCount(ctx, "gender"); err != nil {
		return nil, err
	}
	if stats.ByRank, err = r.groupCount(ctx, "rank"); err != nil {
		return nil, err
	}
	if stats.ByUnit, err = r.groupCount(ctx, "unit_id"); err != nil {
		return nil, err
	}

	stats.RecentHires, err = r.scalar(ctx,
		`SELECT COUNT(*) FROM employees WHERE hire_date > NOW() - $1 * INTERVAL '1 day'`,
		recentHireWindowDays)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
