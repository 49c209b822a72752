package domain

import "errors"

// ErrNotFound is returned by repository writes that matched no row.
var ErrNotFound = errors.New("not found")

type contextKey string

// MerchantContextKey holds the authenticated *Merchant in a request context.
const MerchantContextKey contextKey = "merchant"

// Merchant roles allowed on store admin routes
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Merchant is the identity carried by a dashboard JWT.
type Merchant struct {
	UserID  string
	Email   string
	StoreID string
	Role    string
}

// Response standardizes API responses.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}
