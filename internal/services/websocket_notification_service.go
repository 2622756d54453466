package services

import (
	"go.uber.org/zap"

	"calibration-tracker/pkg/websocket"
)

// WebSocketNotificationServiceInterface - push в открытые вкладки; подменяется в тестах.
type WebSocketNotificationServiceInterface interface {
	Broadcast(payload interface{}, messageType string) error
}

type WebSocketNotificationService struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewWebSocketNotificationService(hub *websocket.Hub, logger *zap.Logger) WebSocketNotificationServiceInterface {
	return &WebSocketNotificationService{hub: hub, logger: logger}
}

func (s *WebSocketNotificationService) Broadcast(payload interface{}, messageType string) error {
	s.logger.Debug("WebSocket: рассылка всем", zap.String("type", messageType), zap.Int("clients", s.hub.ClientCount()))
	return s.hub.Broadcast(payload, messageType)
}
