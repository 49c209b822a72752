package domain

import "context"

// ShippingZone is a merchant-defined rate scope. Optional fields fall back
// to the store-wide StoreShippingSettings when nil.
type ShippingZone struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Type                  string   `json:"type"`
	States                []string `json:"states,omitempty"`
	Pincodes              []string `json:"pincodes,omitempty"`
	FlatRate              float64  `json:"flatRate"`
	CODAvailable          *bool    `json:"codAvailable,omitempty"`
	CODFee                *float64 `json:"codFee,omitempty"`
	FreeShippingThreshold *float64 `json:"freeShippingThreshold,omitempty"`
	EstimatedDays         *int     `json:"estimatedDays,omitempty"`
	IsDefault             bool     `json:"isDefault"`
}

// IsDefaultZone reports whether the zone is the catch-all zone.
func (z ShippingZone) IsDefaultZone() bool {
	return z.IsDefault || z.Type == ZoneTypeDefault
}

type WeightBasedPricing struct {
	Enabled      bool    `json:"enabled"`
	BaseWeightKg float64 `json:"baseWeightKg"`
	PerKgRate    float64 `json:"perKgRate"`
}

type ShippingConfig struct {
	UseZones    bool                `json:"useZones"`
	Zones       []ShippingZone      `json:"zones"`
	WeightBased *WeightBasedPricing `json:"weightBased,omitempty"`
}

// StoreShippingSettings are the global values used when zones are off,
// unmatched, or leave a field unset.
type StoreShippingSettings struct {
	FreeShippingThreshold float64 `json:"freeShippingThreshold"`
	FlatRateNational      float64 `json:"flatRateNational"`
	CODEnabled            bool    `json:"codEnabled"`
	CODFee                float64 `json:"codFee"`
}

// StoreShipping is everything the rate engine reads for one store.
type StoreShipping struct {
	StoreID  string                `json:"storeId"`
	Settings StoreShippingSettings `json:"settings"`
	Config   ShippingConfig        `json:"config"`
}

type Destination struct {
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// HasAddress reports whether enough of the address is known to run zone matching.
func (d Destination) HasAddress() bool {
	return d.State != "" || d.Pincode != ""
}

type CartContext struct {
	Subtotal      float64 `json:"subtotal"`
	TotalWeightKg float64 `json:"totalWeightKg"`
	PaymentMethod string  `json:"paymentMethod"`
}

// ShippingCalculation is recomputed on every quote and never persisted.
type ShippingCalculation struct {
	Zone           *ShippingZone `json:"zone,omitempty"`
	ZoneName       string        `json:"zoneName"`
	BaseRate       float64       `json:"baseRate"`
	WeightCharge   float64       `json:"weightCharge"`
	CODFee         float64       `json:"codFee"`
	TotalShipping  float64       `json:"totalShipping"`
	IsFreeShipping bool          `json:"isFreeShipping"`
	EstimatedDays  *int          `json:"estimatedDays,omitempty"`
	CODAvailable   bool          `json:"codAvailable"`
}

type AvailabilityResult struct {
	Available bool          `json:"available"`
	Reason    string        `json:"reason,omitempty"`
	Zone      *ShippingZone `json:"zone,omitempty"`
}

// ShippingRepository reads and writes a store's shipping configuration.
type ShippingRepository interface {
	GetStoreShipping(ctx context.Context, storeID string) (*StoreShipping, error)
	SaveShippingConfig(ctx context.Context, storeID string, cfg ShippingConfig, settings StoreShippingSettings) error
}
