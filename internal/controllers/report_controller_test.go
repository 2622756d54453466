package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"calibration-tracker/internal/entities"
	"calibration-tracker/pkg/constants"
)

func reportRows() []entities.Calibration {
	next := time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC)
	cert := "CERT-1"
	return []entities.Calibration{{
		ID:                  1,
		EquipmentID:         5,
		Date:                time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		PerformedBy:         "Metrology Lab",
		CertificateNumber:   &cert,
		Status:              constants.CalibrationConditionalPass,
		NextCalibrationDate: &next,
		Equipment:           &entities.EquipmentRef{ID: 5, Name: "Caliper A", SerialNumber: "SN1"},
	}}
}

func TestReportController_XLSX(t *testing.T) {
	ctrl := NewReportController(&stubReportService{rows: reportRows()}, zap.NewNop())

	rec := serve(t, ctrl.GetCalibrationReport, httptest.NewRequest(http.MethodGet, "/?format=xlsx", nil), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Калибровки")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.GreaterOrEqual(t, len(rows[1]), 8)
	assert.Equal(t, []string{"1", "Caliper A", "SN1", "10.01.2026", "Metrology Lab", "CERT-1", "Conditional Pass", "10.01.2027"}, rows[1][:8])
}

func TestReportController_JSON(t *testing.T) {
	ctrl := NewReportController(&stubReportService{rows: reportRows()}, zap.NewNop())

	rec := serve(t, ctrl.GetCalibrationReport, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	list, ok := decode(t, rec.Body).Body.([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)
}
