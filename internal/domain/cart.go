package domain

import (
	"context"
	"time"
)

type CartLine struct {
	ProductID string   `json:"productId"`
	VariantID string   `json:"variantId,omitempty"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unitPrice"`
	WeightKg  *float64 `json:"weightKg,omitempty"`
	ImageURL  string   `json:"imageUrl,omitempty"`
}

type AbandonedCart struct {
	ID                 string     `json:"id"`
	StoreID            string     `json:"storeId"`
	CustomerID         *string    `json:"customerId,omitempty"`
	Email              *string    `json:"email,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	Items              []CartLine `json:"items"`
	Subtotal           float64    `json:"subtotal"`
	ItemCount          int        `json:"itemCount"`
	RecoveryStatus     string     `json:"recoveryStatus"`
	RecoveryEmailsSent int        `json:"recoveryEmailsSent"`
	RecoveryToken      string     `json:"-"`
	AbandonedAt        *time.Time `json:"abandonedAt,omitempty"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	LastEmailSentAt    *time.Time `json:"lastEmailSentAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type RecoveryReport struct {
	Processed  int  `json:"processed"`
	EmailsSent int  `json:"emailsSent"`
	Errors     int  `json:"errors"`
	Expired    int  `json:"expired"`
	Skipped    bool `json:"skipped,omitempty"`
}

type CartRepository interface {
	// Upsert saves the snapshot keyed by (store, email) or (store, customer)
	// and returns the stored row.
	Upsert(ctx context.Context, cart *AbandonedCart) (*AbandonedCart, error)
	ListIdle(ctx context.Context, storeID string, idleBefore time.Time, maxEmails int) ([]AbandonedCart, error)
	MarkAbandoned(ctx context.Context, id string, abandonedAt, expiresAt time.Time) error
	UpdateStatus(ctx context.Context, id string, status string) error
	RecordEmailSent(ctx context.Context, id string, sentAt time.Time) error
	MarkRecovered(ctx context.Context, storeID, email string) (int64, error)
	GetByToken(ctx context.Context, token string) (*AbandonedCart, error)
}
