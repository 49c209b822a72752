package usecase

import (
	"context"

	"storekit-backend/internal/domain"
	"storekit-backend/pkg/apperror"

	"github.com/rs/zerolog"
)

type CourierRegistry interface {
	Get(name string) (domain.CourierProvider, error)
	Providers() []domain.CourierProvider
}

// FulfillmentUsecase fronts the courier adapters for the admin fulfillment flow.
type FulfillmentUsecase struct {
	couriers CourierRegistry
	archiver domain.LabelArchiver
	log      zerolog.Logger
}

// NewFulfillmentUsecase accepts a nil archiver; labels then point at the courier's URL.
func NewFulfillmentUsecase(couriers CourierRegistry, archiver domain.LabelArchiver, log zerolog.Logger) *FulfillmentUsecase {
	return &FulfillmentUsecase{couriers: couriers, archiver: archiver, log: log}
}

func (u *FulfillmentUsecase) provider(name string) (domain.CourierProvider, error) {
	return u.couriers.Get(name)
}

func (u *FulfillmentUsecase) ListProviders() []domain.CourierStatus {
	providers := u.couriers.Providers()
	out := make([]domain.CourierStatus, 0, len(providers))
	for _, p := range providers {
		out = append(out, domain.CourierStatus{Name: p.Name(), Configured: p.IsConfigured()})
	}
	return out
}

func (u *FulfillmentUsecase) CheckServiceability(ctx context.Context, provider, pickup, delivery string) (bool, error) {
	p, err := u.provider(provider)
	if err != nil {
		return false, err
	}
	ok, err := p.CheckServiceability(ctx, pickup, delivery)
	if err != nil {
		u.log.Warn().Err(err).Str("provider", provider).Str("pincode", delivery).Msg("serviceability check failed")
		return false, apperror.ErrCourierUnavailable(err)
	}
	return ok, nil
}

func (u *FulfillmentUsecase) GetRates(ctx context.Context, provider string, req domain.RateRequest) (domain.RateResult, error) {
	p, err := u.provider(provider)
	if err != nil {
		return domain.RateResult{}, err
	}
	return p.GetRates(ctx, req), nil
}

// CompareRates quotes every configured courier and keeps the cheapest and
// fastest option of each. Providers that fail are skipped.
func (u *FulfillmentUsecase) CompareRates(ctx context.Context, req domain.RateRequest) map[string]domain.RateResult {
	out := make(map[string]domain.RateResult)
	for _, p := range u.couriers.Providers() {
		if !p.IsConfigured() {
			continue
		}
		res := p.GetRates(ctx, req)
		if !res.Success {
			u.log.Debug().Str("provider", p.Name()).Str("error", res.Error).Msg("rate quote failed")
		}
		out[p.Name()] = res
	}
	return out
}

func (u *FulfillmentUsecase) CreateShipment(ctx context.Context, provider string, req domain.ShipmentRequest) (domain.ShipmentResult, error) {
	p, err := u.provider(provider)
	if err != nil {
		return domain.ShipmentResult{}, err
	}
	res := p.CreateShipment(ctx, req)
	if res.Success {
		u.log.Info().Str("provider", provider).Str("order_id", req.OrderID).Str("awb", res.AWBCode).Msg("shipment created")
	} else {
		u.log.Warn().Str("provider", provider).Str("order_id", req.OrderID).Str("error", res.Error).Msg("shipment creation failed")
	}
	return res, nil
}

func (u *FulfillmentUsecase) TrackShipment(ctx context.Context, provider, awb string) (domain.TrackingResult, error) {
	p, err := u.provider(provider)
	if err != nil {
		return domain.TrackingResult{}, err
	}
	return p.TrackShipment(ctx, awb), nil
}

func (u *FulfillmentUsecase) CancelShipment(ctx context.Context, provider, awb string) (domain.CancelResult, error) {
	p, err := u.provider(provider)
	if err != nil {
		return domain.CancelResult{}, err
	}
	res := p.CancelShipment(ctx, awb)
	if res.Success {
		u.log.Info().Str("provider", provider).Str("awb", awb).Msg("shipment cancelled")
	}
	return res, nil
}

// GenerateLabel asks the courier for a label and archives a copy. An archive
// failure keeps the courier's own URL.
func (u *FulfillmentUsecase) GenerateLabel(ctx context.Context, provider, shipmentID string) (domain.LabelResult, error) {
	p, err := u.provider(provider)
	if err != nil {
		return domain.LabelResult{}, err
	}
	res := p.GenerateLabel(ctx, shipmentID)
	if !res.Success || u.archiver == nil {
		return res, nil
	}

	archived, err := u.archiver.ArchiveLabel(ctx, provider, shipmentID, res.LabelURL)
	if err != nil {
		u.log.Warn().Err(err).Str("provider", provider).Str("shipment_id", shipmentID).Msg("label archive failed, using courier url")
		return res, nil
	}
	res.LabelURL = archived
	return res, nil
}

func (u *FulfillmentUsecase) ValidateCredentials(ctx context.Context, provider string) error {
	p, err := u.provider(provider)
	if err != nil {
		return err
	}
	if err := p.ValidateCredentials(ctx); err != nil {
		return apperror.ErrCourierCredentials(err)
	}
	return nil
}
