package domain

import (
	"context"
	"time"
)

// SendRequest asks the dispatcher to deliver one templated message.
// Recipients containing "@" go out by email, everything else by WhatsApp.
type SendRequest struct {
	To       string   `json:"to"`
	Template string   `json:"template"`
	Params   []string `json:"params"`
	StoreID  string   `json:"storeId,omitempty"`
}

type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Attempts  int    `json:"attempts"`
}

// NotificationAttempt is one audited try of a send.
type NotificationAttempt struct {
	Recipient     string
	Template      string
	AttemptNumber int
	MaxAttempts   int
	Status        string
	Error         string
	MessageID     string
}

type MessagingCredentials struct {
	AuthKey          string
	IntegratedNumber string
	Source           string
}

// OutboundMessage is what a provider puts on the wire.
type OutboundMessage struct {
	To       string
	Template string
	Params   []string
}

// ProviderResponse reports one provider call. StatusCode is zero when the
// request never got an HTTP response.
type ProviderResponse struct {
	StatusCode int
	MessageID  string
}

type WhatsAppProvider interface {
	SendTemplate(ctx context.Context, creds MessagingCredentials, msg OutboundMessage) (ProviderResponse, error)
}

type EmailProvider interface {
	Configured() bool
	SendTemplate(ctx context.Context, msg OutboundMessage) (ProviderResponse, error)
}

type CredentialDecrypter interface {
	Decrypt(ciphertextHex string) (string, error)
}

type NotificationLog struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId,omitempty"`
	Recipient string    `json:"recipient"`
	Channel   string    `json:"channel"`
	Template  string    `json:"template"`
	Status    string    `json:"status"`
	Attempts  int       `json:"attempts"`
	MessageID string    `json:"messageId,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationLogRepository interface {
	Create(ctx context.Context, log *NotificationLog) error
}

// Notifier is the send contract consumed by order and recovery flows.
type Notifier interface {
	Send(ctx context.Context, req SendRequest) SendResult
}

// OrderEvent is an order lifecycle message from the order service.
type OrderEvent struct {
	Type          string    `json:"type"`
	OrderID       string    `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	StoreID       string    `json:"storeId"`
	CustomerName  string    `json:"customerName"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"paymentMethod"`
	AWBCode       string    `json:"awbCode,omitempty"`
	TrackingURL   string    `json:"trackingUrl,omitempty"`
	CourierName   string    `json:"courierName,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Order event types
const (
	OrderEventConfirmed   = "order.confirmed"
	OrderEventShipped     = "order.shipped"
	OrderEventDelivered   = "order.delivered"
	OrderEventCODReminder = "order.cod_reminder"
	OrderEventCompleted   = "order.completed"
)
