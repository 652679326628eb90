package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/asnhub/asndash/internal/common"
	"github.com/asnhub/asndash/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const employeeColumns = `id, nip, name, birth_place, birth_date, gender, rank, position, unit_id, employment_type, status, hire_date, created_at, updated_at`

func scanEmployee(row interface{ Scan(dest ...any) error }) (*Employee, error) {
	e := &Employee{}
	err := row.Scan(&e.ID, &e.NIP, &e.Name, &e.BirthPlace, &e.BirthDate, &e.Gender,
		&e.Rank, &e.Position, &e.UnitID, &e.EmploymentType, &e.Status, &e.HireDate,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *Employee) (*Employee, error) {
	query := `INSERT INTO employees (` + employeeColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.NIP, e.Name, e.BirthPlace, e.BirthDate, e.Gender,
		e.Rank, e.Position, e.UnitID, e.EmploymentType, e.Status, e.HireDate,
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) GetByNIP(ctx context.Context, nip string) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE nip = $1`

	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, nip))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Update(ctx context.Context, e *Employee) error {
	query := `UPDATE employees
	          SET nip = $2, name = $3, birth_place = $4, birth_date = $5, gender = $6,
	              rank = $7, position = $8, unit_id = $9, employment_type = $10,
	              status = $11, hire_date = $12, updated_at = $13
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		e.ID, e.NIP, e.Name, e.BirthPlace, e.BirthDate, e.Gender,
		e.Rank, e.Position, e.UnitID, e.EmploymentType, e.Status, e.HireDate,
		e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// buildWhere assembles the WHERE clause and args for a Filter.
func buildWhere(f Filter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.UnitID != "" {
		add("unit_id = $%d", f.UnitID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Rank != "" {
		add("rank = $%d", f.Rank)
	}
	if f.EmploymentType != "" {
		add("employment_type = $%d", f.EmploymentType)
	}
	if f.Search != "" {
		add("(name ILIKE '%%' || $%d || '%%' OR nip LIKE '%%' || $%[1]d || '%%')", f.Search)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*Employee, error) {
	where, args := buildWhere(f)

	query := `SELECT ` + employeeColumns + ` FROM employees` + where + ` ORDER BY name`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Count(ctx context.Context, f Filter) (int, error) {
	where, args := buildWhere(f)

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CountByUnit(ctx context.Context, unitID string) (int, error) {
	return r.Count(ctx, Filter{UnitID: unitID})
}
