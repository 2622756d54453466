package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"calibration-tracker/internal/dto"
	"calibration-tracker/internal/entities"
	"calibration-tracker/pkg/constants"
	apperrors "calibration-tracker/pkg/errors"
	"calibration-tracker/pkg/types"
)

func newCalibrationFixture(statuses ...constants.EquipmentStatus) (*fakeEquipmentRepo, *fakeCalibrationRepo, CalibrationServiceInterface) {
	equipment := newFakeEquipmentRepo()
	for _, s := range statuses {
		_, _ = equipment.CreateEquipment(context.Background(), withSerial(caliper(s), "SN-"+string(s)))
	}
	calibrations := &fakeCalibrationRepo{}
	tx := &fakeTxManager{equipment: equipment, calibrations: calibrations}
	return equipment, calibrations, NewCalibrationService(tx, calibrations, equipment, zap.NewNop(), clockAt(fixedNow))
}

func TestRecordCalibration_UpdatesEquipment(t *testing.T) {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		result constants.CalibrationResult
		want   constants.EquipmentStatus
	}{
		{constants.CalibrationPass, constants.EquipmentActive},
		{constants.CalibrationConditionalPass, constants.EquipmentActive},
		{constants.CalibrationFail, constants.EquipmentInactive},
	}

	for _, tt := range tests {
		t.Run(string(tt.result), func(t *testing.T) {
			equipment, calibrations, svc := newCalibrationFixture(constants.EquipmentOutForCalibration)

			created, err := svc.RecordCalibration(context.Background(), dto.CreateCalibrationDTO{
				EquipmentID:         1,
				Date:                types.Date{Time: date},
				PerformedBy:         "Metrology Lab",
				Status:              string(tt.result),
				NextCalibrationDate: &types.Date{Time: next},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.result, created.Status)
			assert.Len(t, calibrations.items, 1)

			e, _ := equipment.FindEquipment(context.Background(), 1)
			assert.Equal(t, tt.want, e.Status)
			assert.Equal(t, date, *e.LastCalibrationDate)
			assert.Equal(t, next, *e.NextCalibrationDate)
		})
	}
}

func TestRecordCalibration_DefaultsToPass(t *testing.T) {
	equipment, _, svc := newCalibrationFixture(constants.EquipmentInactive)

	created, err := svc.RecordCalibration(context.Background(), dto.CreateCalibrationDTO{
		EquipmentID: 1,
		Date:        types.Date{Time: fixedNow},
		PerformedBy: "QA",
	})

	require.NoError(t, err)
	assert.Equal(t, constants.CalibrationPass, created.Status)
	e, _ := equipment.FindEquipment(context.Background(), 1)
	assert.Equal(t, constants.EquipmentActive, e.Status)
	assert.Nil(t, e.NextCalibrationDate, "следующая дата берётся как пришла, в том числе пустая")
}

func TestRecordCalibration_UnknownEquipmentRollsBack(t *testing.T) {
	_, calibrations, svc := newCalibrationFixture()

	_, err := svc.RecordCalibration(context.Background(), dto.CreateCalibrationDTO{
		EquipmentID: 99,
		Date:        types.Date{Time: fixedNow},
		PerformedBy: "QA",
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, calibrations.items)
}

func TestRecordCalibration_InsertFailureLeavesEquipment(t *testing.T) {
	equipment, calibrations, svc := newCalibrationFixture(constants.EquipmentOutForCalibration)
	calibrations.createErr = errors.New("insert failed")

	_, err := svc.RecordCalibration(context.Background(), dto.CreateCalibrationDTO{
		EquipmentID: 1,
		Date:        types.Date{Time: fixedNow},
		PerformedBy: "QA",
		Status:      string(constants.CalibrationFail),
	})

	require.Error(t, err)
	e, _ := equipment.FindEquipment(context.Background(), 1)
	assert.Equal(t, constants.EquipmentOutForCalibration, e.Status)
	assert.Nil(t, e.LastCalibrationDate)
}

func TestGetEquipmentCalibrations(t *testing.T) {
	_, _, svc := newCalibrationFixture(constants.EquipmentActive, constants.EquipmentReserve)
	ctx := context.Background()

	for _, id := range []uint64{1, 2, 1} {
		_, err := svc.RecordCalibration(ctx, dto.CreateCalibrationDTO{EquipmentID: id, Date: types.Date{Time: fixedNow}, PerformedBy: "QA"})
		require.NoError(t, err)
	}

	list, err := svc.GetEquipmentCalibrations(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.GetEquipmentCalibrations(ctx, 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSuggestNextDate(t *testing.T) {
	equipment, _, svc := newCalibrationFixture(constants.EquipmentActive)
	ctx := context.Background()

	s, err := svc.SuggestNextDate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, s.From, "без прошлой калибровки отсчёт идёт от текущего момента")
	assert.Equal(t, fixedNow.AddDate(0, 12, 0), s.SuggestedNextCalibrationDate)

	e := equipment.items[1]
	e.LastCalibrationDate = timePtr(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	e.CalibrationFrequencyInMonths = 6
	equipment.items[1] = e

	s, err = svc.SuggestNextDate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), s.SuggestedNextCalibrationDate)
	assert.Equal(t, 6, s.CalibrationFrequencyInMonths)
}

func withSerial(e entities.Equipment, serial string) *entities.Equipment {
	e.SerialNumber = serial
	return &e
}
