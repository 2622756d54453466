package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calibration-tracker/pkg/constants"
)

func TestDashboardStats_DueBoundaries(t *testing.T) {
	repo := newFakeEquipmentRepo(
		dueAt(constants.EquipmentActive, 7),
		dueAt(constants.EquipmentActive, 8),
		dueAt(constants.EquipmentDiscontinued, -10),
		caliper(constants.EquipmentReserve),
	)
	svc := NewDashboardService(repo, clockAt(fixedNow))

	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Due7)
	assert.Equal(t, 2, stats.Due30)
	assert.Equal(t, 1, stats.Overdue, "на дашборде просрочка считается при любом статусе")
	assert.Equal(t, 4, stats.Inplant)
	assert.Equal(t, 1, stats.Unscheduled)
	assert.Equal(t, 2, stats.Scheduled)
}

func TestDashboardStats_Error(t *testing.T) {
	repo := newFakeEquipmentRepo()
	repo.listErr = errors.New("boom")

	_, err := NewDashboardService(repo, clockAt(fixedNow)).GetStats(context.Background())

	assert.Error(t, err)
}
