package employees

import (
	"context"
	"testing"
	"time"

	"github.com/asnhub/asndash/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewMemoryRepository())
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func sample(nip, name string) *Employee {
	return &Employee{
		NIP:            nip,
		Name:           name,
		Gender:         "M",
		Rank:           "III/a",
		Position:       "Staff",
		UnitID:         "unit-1",
		EmploymentType: TypePNS,
		Status:         StatusActive,
		HireDate:       time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

const validNIP1 = "198001012005011001"
const validNIP2 = "198202022006022002"

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	svc := newTestService(t)

	e, err := svc.Create(context.Background(), sample(validNIP1, "Budi Santoso"))
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, svc.now(), e.CreatedAt)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(e *Employee)
	}{
		{"short NIP", func(e *Employee) { e.NIP = "12345" }},
		{"non-numeric NIP", func(e *Employee) { e.NIP = "19800101200501100X" }},
		{"missing name", func(e *Employee) { e.Name = "" }},
		{"bad employment type", func(e *Employee) { e.EmploymentType = "honorer" }},
		{"bad status", func(e *Employee) { e.Status = "vacation" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := sample(validNIP1, "Budi")
			tt.mutate(e)
			_, err := svc.Create(ctx, e)
			assert.ErrorIs(t, err, common.ErrorInvalidInput)
		})
	}
}

func TestCreate_DuplicateNIP(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, sample(validNIP1, "Budi"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, sample(validNIP1, "Siti"))
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestUpdate_NIPUniquenessAndTimestamps(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, sample(validNIP1, "Budi"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sample(validNIP2, "Siti"))
	require.NoError(t, err)

	// changing to a NIP held by someone else conflicts
	a.NIP = validNIP2
	_, err = svc.Update(ctx, a)
	assert.ErrorIs(t, err, common.ErrorConflict)

	// a normal edit succeeds and bumps UpdatedAt
	a.NIP = validNIP1
	a.Position = "Kepala Seksi"
	svc.now = func() time.Time { return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) }
	updated, err := svc.Update(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "Kepala Seksi", updated.Position)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(t)

	e := sample(validNIP1, "Budi")
	e.ID = "missing"
	_, err := svc.Update(context.Background(), e)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList_FilterAndTotal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := sample(validNIP1, "Budi")
	_, err := svc.Create(ctx, a)
	require.NoError(t, err)

	b := sample(validNIP2, "Siti")
	b.UnitID = "unit-2"
	b.Status = StatusRetired
	_, err = svc.Create(ctx, b)
	require.NoError(t, err)

	items, total, err := svc.List(ctx, Filter{UnitID: "unit-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Budi", items[0].Name)

	// pagination: total reflects the filter, not the page
	items, total, err = svc.List(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 1)
}

func TestList_Search(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, sample(validNIP1, "Budi Santoso"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sample(validNIP2, "Siti Aminah"))
	require.NoError(t, err)

	items, _, err := svc.List(ctx, Filter{Search: "santoso"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Budi Santoso", items[0].Name)

	items, _, err = svc.List(ctx, Filter{Search: validNIP2[:8]})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Siti Aminah", items[0].Name)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, sample(validNIP1, "Budi"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID))
	_, err = svc.Get(ctx, e.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, e.ID), common.ErrorNotFound)
}
