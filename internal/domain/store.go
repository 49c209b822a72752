package domain

import (
	"context"
	"time"
)

type Store struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Slug      string            `json:"slug"`
	Messaging MessagingSettings `json:"messaging"`
	Recovery  RecoverySettings  `json:"recovery"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// MessagingSettings holds a merchant's own WhatsApp account. AuthKeyEnc is
// AES-GCM ciphertext and is never serialized.
type MessagingSettings struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	Verified             bool   `json:"verified"`
	AuthKeyEnc           string `json:"-"`
	IntegratedNumber     string `json:"integratedNumber,omitempty"`
}

// HasCustomCredentials reports whether the store's own credentials may be used.
func (m MessagingSettings) HasCustomCredentials() bool {
	return m.NotificationsEnabled && m.Verified && m.AuthKeyEnc != "" && m.IntegratedNumber != ""
}

type RecoverySettings struct {
	Enabled  bool           `json:"enabled"`
	Sequence []RecoveryStep `json:"sequence"`
}

// RecoveryStep is one reminder in the recovery sequence. Discount fields are
// only honoured on the last step.
type RecoveryStep struct {
	DelayHours      float64 `json:"delayHours"`
	DiscountCode    string  `json:"discountCode,omitempty"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
}

type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*Store, error)
	ListRecoveryEnabled(ctx context.Context) ([]Store, error)
}
