package domain

import (
	"context"
	"time"
)

// CourierProvider is the capability set every courier adapter implements.
// Expected failures (missing credentials, HTTP errors, empty rate lists)
// come back in the result's Success/Error fields, never as panics.
type CourierProvider interface {
	Name() string
	IsConfigured() bool
	ValidateCredentials(ctx context.Context) error
	CheckServiceability(ctx context.Context, pickupPincode, deliveryPincode string) (bool, error)
	GetRates(ctx context.Context, req RateRequest) RateResult
	CreateShipment(ctx context.Context, req ShipmentRequest) ShipmentResult
	TrackShipment(ctx context.Context, awbCode string) TrackingResult
	CancelShipment(ctx context.Context, awbCode string) CancelResult
	GenerateLabel(ctx context.Context, shipmentID string) LabelResult
}

// CourierStatus is one row of the admin couriers listing.
type CourierStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

type RateRequest struct {
	PickupPincode   string  `json:"pickupPincode"`
	DeliveryPincode string  `json:"deliveryPincode"`
	WeightKg        float64 `json:"weightKg"`
	PaymentMethod   string  `json:"paymentMethod"`
	DeclaredValue   float64 `json:"declaredValue"`
}

type Rate struct {
	CourierID     string  `json:"courierId"`
	CourierName   string  `json:"courierName"`
	Rate          float64 `json:"rate"`
	CODCharges    float64 `json:"codCharges"`
	EstimatedDays int     `json:"estimatedDays"`
}

type RateResult struct {
	Success  bool   `json:"success"`
	Rates    []Rate `json:"rates"`
	Cheapest *Rate  `json:"cheapest,omitempty"`
	Fastest  *Rate  `json:"fastest,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ShipmentAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country,omitempty"`
}

type ShipmentItem struct {
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type ShipmentRequest struct {
	OrderID        string          `json:"orderId"`
	OrderDate      time.Time       `json:"orderDate"`
	PaymentMethod  string          `json:"paymentMethod"`
	OrderTotal     float64         `json:"orderTotal"`
	CODAmount      float64         `json:"codAmount"`
	WeightKg       float64         `json:"weightKg"`
	LengthCm       float64         `json:"lengthCm"`
	BreadthCm      float64         `json:"breadthCm"`
	HeightCm       float64         `json:"heightCm"`
	PickupLocation string          `json:"pickupLocation,omitempty"`
	Pickup         ShipmentAddress `json:"pickup"`
	Delivery       ShipmentAddress `json:"delivery"`
	Items          []ShipmentItem  `json:"items"`
	CourierID      string          `json:"courierId,omitempty"`
}

type ShipmentResult struct {
	Success     bool   `json:"success"`
	ShipmentID  string `json:"shipmentId,omitempty"`
	AWBCode     string `json:"awbCode,omitempty"`
	CourierName string `json:"courierName,omitempty"`
	TrackingURL string `json:"trackingUrl,omitempty"`
	Error       string `json:"error,omitempty"`
}

type TrackingEvent struct {
	Date     time.Time `json:"date"`
	Status   string    `json:"status"`
	Activity string    `json:"activity"`
	Location string    `json:"location"`
}

type TrackingResult struct {
	Success           bool            `json:"success"`
	CurrentStatus     string          `json:"currentStatus"`
	CurrentLocation   string          `json:"currentLocation,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	DeliveredAt       *time.Time      `json:"deliveredAt,omitempty"`
	Events            []TrackingEvent `json:"events"`
	Error             string          `json:"error,omitempty"`
}

type CancelResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type LabelResult struct {
	Success  bool   `json:"success"`
	LabelURL string `json:"labelUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

// LabelArchiver copies a courier-hosted label into our own storage.
type LabelArchiver interface {
	ArchiveLabel(ctx context.Context, provider, shipmentID, sourceURL string) (string, error)
}
