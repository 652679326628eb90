package repomanager

import (
	"context"
	"testing"

	"github.com/asnhub/asndash/internal/employees"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryManager(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepositoryManager()

	require.NoError(t, m.RunMigrations(ctx))
	assert.Nil(t, m.Conn())

	_, err := m.Employees().Create(ctx, &employees.Employee{
		NIP:            "198001012005011001",
		Name:           "Budi Santoso",
		Status:         employees.StatusActive,
		EmploymentType: employees.TypePNS,
	})
	require.NoError(t, err)

	stats, err := m.Dashboard().Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalEmployees)

	list, err := m.Units().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
