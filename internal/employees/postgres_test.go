package employees

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/asnhub/asndash/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func employeeRows(e *Employee) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "nip", "name", "birth_place", "birth_date", "gender", "rank",
		"position", "unit_id", "employment_type", "status", "hire_date",
		"created_at", "updated_at",
	}).AddRow(e.ID, e.NIP, e.Name, e.BirthPlace, e.BirthDate, e.Gender, e.Rank,
		e.Position, e.UnitID, e.EmploymentType, e.Status, e.HireDate,
		e.CreatedAt, e.UpdatedAt)
}

func mockEmployee() *Employee {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &Employee{
		ID: "id-1", NIP: "198001012005011001", Name: "Budi",
		BirthDate: now, Gender: "M", Rank: "III/a", Position: "Staff",
		UnitID: "unit-1", EmploymentType: TypePNS, Status: StatusActive,
		HireDate: now, CreatedAt: now, UpdatedAt: now,
	}
}

func TestPostgres_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	want := mockEmployee()

	mock.ExpectQuery(`SELECT .+ FROM employees WHERE id = \$1`).
		WithArgs("id-1").
		WillReturnRows(employeeRows(want))

	got, err := repo.GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM employees WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := mockEmployee()

	mock.ExpectExec(`INSERT INTO employees`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Create(context.Background(), e)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Update_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE employees`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), mockEmployee())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_Count_WithFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employees WHERE unit_id = \$1 AND status = \$2`).
		WithArgs("unit-1", StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.Count(context.Background(), Filter{UnitID: "unit-1", Status: StatusActive})
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestPostgres_List_AppliesLimitOffset(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := mockEmployee()

	mock.ExpectQuery(`SELECT .+ FROM employees ORDER BY name LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 20).
		WillReturnRows(employeeRows(e))

	got, err := repo.List(context.Background(), Filter{Limit: 10, Offset: 20})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
}
