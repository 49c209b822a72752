package postgres

import (
	"context"
	"errors"
	"fmt"

	"storekit-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
)

// ShippingRepo reads and writes the shipping columns of stores. The zone
// setup lives in the shipping_config JSONB column.
type ShippingRepo struct {
	pool Pool
}

func NewShippingRepo(pool Pool) *ShippingRepo {
	return &ShippingRepo{pool: pool}
}

func (r *ShippingRepo) GetStoreShipping(ctx context.Context, storeID string) (*domain.StoreShipping, error) {
	query := `SELECT id, free_shipping_threshold, flat_rate_national, cod_enabled, cod_fee, shipping_config
		FROM stores WHERE id = $1`

	s := &domain.StoreShipping{}
	var raw []byte
	err := r.pool.QueryRow(ctx, query, storeID).Scan(
		&s.StoreID,
		&s.Settings.FreeShippingThreshold,
		&s.Settings.FlatRateNational,
		&s.Settings.CODEnabled,
		&s.Settings.CODFee,
		&raw,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store shipping: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.Config); err != nil {
			return nil, fmt.Errorf("decode shipping config for store %s: %w", storeID, err)
		}
	}
	return s, nil
}

func (r *ShippingRepo) SaveShippingConfig(ctx context.Context, storeID string, cfg domain.ShippingConfig, settings domain.StoreShippingSettings) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode shipping config: %w", err)
	}

	query := `UPDATE stores SET shipping_config = $2, free_shipping_threshold = $3, flat_rate_national = $4,
		cod_enabled = $5, cod_fee = $6, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, storeID, raw,
		settings.FreeShippingThreshold, settings.FlatRateNational, settings.CODEnabled, settings.CODFee)
	if err != nil {
		return fmt.Errorf("update shipping config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
