package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"calibration-tracker/internal/dto"
	"calibration-tracker/internal/entities"
	"calibration-tracker/pkg/types"
	"calibration-tracker/pkg/utils"
	"calibration-tracker/pkg/validation"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	return e
}

// serve вызывает handler с параметрами пути так же, как это делает роутер.
func serve(t *testing.T, handler echo.HandlerFunc, req *http.Request, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	require.NoError(t, handler(c))
	return rec
}

func decode(t *testing.T, body io.Reader) utils.HTTPResponse {
	t.Helper()
	var res utils.HTTPResponse
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

type stubEquipmentService struct {
	findErr    error
	updateErr  error
	lastID     uint64
	lastUpdate dto.UpdateEquipmentDTO
	lastRaw    []byte
}

func (s *stubEquipmentService) GetEquipments(context.Context, types.Filter) ([]entities.Equipment, uint64, error) {
	return []entities.Equipment{{ID: 1}}, 1, nil
}

func (s *stubEquipmentService) FindEquipment(_ context.Context, id uint64) (*entities.Equipment, error) {
	s.lastID = id
	if s.findErr != nil {
		return nil, s.findErr
	}
	return &entities.Equipment{ID: id, Name: "Caliper A"}, nil
}

func (s *stubEquipmentService) FindBySerialNumber(context.Context, string) (*entities.Equipment, error) {
	return &entities.Equipment{ID: 1}, nil
}

func (s *stubEquipmentService) CreateEquipment(context.Context, dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	return &entities.Equipment{ID: 1}, nil
}

func (s *stubEquipmentService) UpdateEquipment(_ context.Context, id uint64, payload dto.UpdateEquipmentDTO, rawBody []byte) (*entities.Equipment, error) {
	s.lastID, s.lastUpdate, s.lastRaw = id, payload, rawBody
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &entities.Equipment{ID: id}, nil
}

func (s *stubEquipmentService) AttachDocument(context.Context, uint64, dto.AttachDocumentDTO) (*entities.Equipment, error) {
	return &entities.Equipment{ID: 1}, nil
}

func (s *stubEquipmentService) DeleteEquipment(context.Context, uint64) error { return nil }

type stubNotificationService struct {
	calls []string
}

func (s *stubNotificationService) Emit(context.Context, entities.Notification) {}

func (s *stubNotificationService) GenerateOverdue(context.Context) int {
	s.calls = append(s.calls, "generate")
	return 1
}

func (s *stubNotificationService) GetNotifications(context.Context) ([]entities.Notification, error) {
	s.calls = append(s.calls, "list")
	return []entities.Notification{{ID: 1}}, nil
}

func (s *stubNotificationService) GetFeed(context.Context) ([]dto.NotificationFeedItemDTO, error) {
	return nil, nil
}

func (s *stubNotificationService) MarkRead(_ context.Context, id uint64) (*entities.Notification, error) {
	return &entities.Notification{ID: id, Read: true}, nil
}

func (s *stubNotificationService) MarkAllRead(context.Context) (int64, error) { return 3, nil }

func (s *stubNotificationService) DeleteNotification(context.Context, uint64) error { return nil }

type stubAuthService struct {
	loginErr error
}

func (s *stubAuthService) Register(_ context.Context, payload dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	return &dto.AuthResponseDTO{Token: "registered-token", User: dto.UserDTO{ID: 1, Email: payload.Email}}, nil
}

func (s *stubAuthService) Login(_ context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.AuthResponseDTO{Token: "login-token", User: dto.UserDTO{ID: 1, Email: payload.Email}}, nil
}

func (s *stubAuthService) Me(_ context.Context, userID uint64) (*dto.UserDTO, error) {
	return &dto.UserDTO{ID: userID}, nil
}

type stubReportService struct {
	rows []entities.Calibration
}

func (s *stubReportService) GetCalibrationReport(context.Context, types.Filter) ([]entities.Calibration, uint64, error) {
	return s.rows, uint64(len(s.rows)), nil
}

func (s *stubReportService) GetCalibrationExport(context.Context, types.Filter) ([]entities.Calibration, error) {
	return s.rows, nil
}
