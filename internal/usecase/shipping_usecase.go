package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"storekit-backend/internal/domain"
	"storekit-backend/pkg/apperror"
	"storekit-backend/pkg/cache"

	"github.com/rs/zerolog"
)

type ShippingUsecase struct {
	repo     domain.ShippingRepository
	cache    cache.CacheService
	cacheTTL time.Duration
	log      zerolog.Logger
}

func NewShippingUsecase(repo domain.ShippingRepository, cache cache.CacheService, cacheTTL time.Duration, log zerolog.Logger) *ShippingUsecase {
	return &ShippingUsecase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// QuoteRequest is a checkout-time shipping quote. When Subtotal or weight is
// not supplied they are derived from Items.
type QuoteRequest struct {
	Destination   domain.Destination `json:"destination"`
	Items         []domain.CartLine  `json:"items"`
	Subtotal      *float64           `json:"subtotal,omitempty"`
	WeightKg      *float64           `json:"weightKg,omitempty"`
	PaymentMethod string             `json:"paymentMethod"`
}

type Quote struct {
	Shipping     domain.ShippingCalculation `json:"shipping"`
	Availability domain.AvailabilityResult  `json:"availability"`
	Subtotal     float64                    `json:"subtotal"`
	Total        float64                    `json:"total"`
}

func (u *ShippingUsecase) GetStoreShipping(ctx context.Context, storeID string) (*domain.StoreShipping, error) {
	key := cache.KeyShippingConfigPrefix + storeID
	if val, found := u.cache.Get(key); found {
		return val.(*domain.StoreShipping), nil
	}

	shipping, err := u.repo.GetStoreShipping(ctx, storeID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if shipping == nil {
		return nil, apperror.ErrStoreNotFound()
	}

	u.cache.Set(key, shipping, u.cacheTTL)
	return shipping, nil
}

// Quote prices shipping for a cart and reports availability alongside it,
// so checkout can refuse undeliverable addresses while still showing a rate.
func (u *ShippingUsecase) Quote(ctx context.Context, storeID string, req QuoteRequest) (*Quote, error) {
	shipping, err := u.GetStoreShipping(ctx, storeID)
	if err != nil {
		return nil, err
	}

	subtotal := lineSubtotal(req.Items)
	if req.Subtotal != nil {
		subtotal = *req.Subtotal
	}
	weight := TotalWeight(req.Items)
	if req.WeightKg != nil {
		weight = *req.WeightKg
	}
	if subtotal < 0 || weight < 0 {
		return nil, apperror.Validation("subtotal and weight must not be negative")
	}
	if req.PaymentMethod != "" && !slices.Contains(domain.PaymentMethods, req.PaymentMethod) {
		return nil, apperror.Validation("unknown payment method " + req.PaymentMethod)
	}

	calc := CalculateShipping(req.Destination, *shipping, domain.CartContext{
		Subtotal:      subtotal,
		TotalWeightKg: weight,
		PaymentMethod: req.PaymentMethod,
	})
	avail := CheckAvailability(req.Destination, shipping.Config)

	u.log.Debug().
		Str("store_id", storeID).
		Str("zone", calc.ZoneName).
		Float64("total_shipping", calc.TotalShipping).
		Bool("available", avail.Available).
		Msg("shipping quoted")

	return &Quote{
		Shipping:     calc,
		Availability: avail,
		Subtotal:     subtotal,
		Total:        CalculateCartTotal(subtotal, calc.TotalShipping, 0, 0),
	}, nil
}

func (u *ShippingUsecase) CheckAvailability(ctx context.Context, storeID string, dest domain.Destination) (domain.AvailabilityResult, error) {
	shipping, err := u.GetStoreShipping(ctx, storeID)
	if err != nil {
		return domain.AvailabilityResult{}, err
	}
	return CheckAvailability(dest, shipping.Config), nil
}

// UpdateShippingConfig saves a store's shipping setup. Malformed pincode
// patterns, unknown zone types, negative amounts and multiple default zones
// are rejected; overlaps and a missing default are returned as warnings.
func (u *ShippingUsecase) UpdateShippingConfig(ctx context.Context, storeID string, cfg domain.ShippingConfig, settings domain.StoreShippingSettings) ([]string, error) {
	if settings.FlatRateNational < 0 || settings.CODFee < 0 || settings.FreeShippingThreshold < 0 {
		return nil, apperror.Validation("shipping amounts must not be negative")
	}
	if wb := cfg.WeightBased; wb != nil && (wb.BaseWeightKg < 0 || wb.PerKgRate < 0) {
		return nil, apperror.Validation("weight pricing must not be negative")
	}

	blocking, warnings := CheckZoneConfig(cfg.Zones)
	if len(blocking) > 0 {
		return nil, apperror.ErrInvalidZoneConfig(blocking)
	}

	if err := u.repo.SaveShippingConfig(ctx, storeID, cfg, settings); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.ErrStoreNotFound()
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("save shipping config: %w", err))
	}
	u.cache.Delete(cache.KeyShippingConfigPrefix + storeID)

	if len(warnings) > 0 {
		u.log.Warn().Str("store_id", storeID).Strs("warnings", warnings).Msg("shipping config saved with warnings")
	}
	return warnings, nil
}

func lineSubtotal(items []domain.CartLine) float64 {
	var total float64
	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}
