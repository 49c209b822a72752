package postgres

import (
	"context"
	"errors"
	"fmt"

	"storekit-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
)

type StoreRepo struct {
	pool Pool
}

func NewStoreRepo(pool Pool) *StoreRepo {
	return &StoreRepo{pool: pool}
}

const storeColumns = `id, name, slug,
	messaging_notifications_enabled, messaging_verified,
	COALESCE(messaging_auth_key_enc, ''), COALESCE(messaging_integrated_number, ''),
	recovery_enabled, COALESCE(recovery_sequence, '[]'::jsonb),
	created_at, updated_at`

func scanStore(row pgx.Row) (*domain.Store, error) {
	s := &domain.Store{}
	var seq []byte
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug,
		&s.Messaging.NotificationsEnabled, &s.Messaging.Verified,
		&s.Messaging.AuthKeyEnc, &s.Messaging.IntegratedNumber,
		&s.Recovery.Enabled, &seq,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(seq) > 0 {
		if err := json.Unmarshal(seq, &s.Recovery.Sequence); err != nil {
			return nil, fmt.Errorf("decode recovery sequence for store %s: %w", s.ID, err)
		}
	}
	return s, nil
}

func (r *StoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	s, err := scanStore(r.pool.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store by id: %w", err)
	}
	return s, nil
}

func (r *StoreRepo) ListRecoveryEnabled(ctx context.Context) ([]domain.Store, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+storeColumns+` FROM stores WHERE recovery_enabled = TRUE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list recovery stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return stores, nil
}
