package websocket

import "time"

// Envelope - конверт сообщения; по Type фронтенд решает, что делать с Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const MessageTypeNotification = "notification.created"
