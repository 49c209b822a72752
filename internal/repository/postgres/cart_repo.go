package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storekit-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
)

// idleBatchSize bounds one sweep's work per store.
const idleBatchSize = 500

type CartRepo struct {
	pool Pool
}

func NewCartRepo(pool Pool) *CartRepo {
	return &CartRepo{pool: pool}
}

const cartColumns = `id, store_id, customer_id, email, phone, items, subtotal, item_count,
	recovery_status, recovery_emails_sent, recovery_token,
	abandoned_at, expires_at, last_email_sent_at, created_at, updated_at`

func scanCart(row pgx.Row) (*domain.AbandonedCart, error) {
	c := &domain.AbandonedCart{}
	var items []byte
	err := row.Scan(
		&c.ID, &c.StoreID, &c.CustomerID, &c.Email, &c.Phone, &items, &c.Subtotal, &c.ItemCount,
		&c.RecoveryStatus, &c.RecoveryEmailsSent, &c.RecoveryToken,
		&c.AbandonedAt, &c.ExpiresAt, &c.LastEmailSentAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &c.Items); err != nil {
			return nil, fmt.Errorf("decode cart items for %s: %w", c.ID, err)
		}
	}
	return c, nil
}

// cartKey is the identity a store keeps one cart per: email first, then customer.
func cartKey(c *domain.AbandonedCart) (string, error) {
	switch {
	case c.Email != nil && *c.Email != "":
		return "email:" + *c.Email, nil
	case c.CustomerID != nil && *c.CustomerID != "":
		return "customer:" + *c.CustomerID, nil
	}
	return "", errors.New("cart has neither email nor customer id")
}

// Upsert keeps an unsubscribed cart unsubscribed; any other non-active cart
// starts a fresh sequence. The recovery token of an existing row is kept.
func (r *CartRepo) Upsert(ctx context.Context, c *domain.AbandonedCart) (*domain.AbandonedCart, error) {
	key, err := cartKey(c)
	if err != nil {
		return nil, err
	}
	items, err := json.Marshal(c.Items)
	if err != nil {
		return nil, fmt.Errorf("encode cart items: %w", err)
	}

	query := `INSERT INTO abandoned_carts (id, store_id, cart_key, customer_id, email, phone, items, subtotal, item_count,
			recovery_status, recovery_emails_sent, recovery_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'active', 0, $10, $11, $11)
		ON CONFLICT (store_id, cart_key) DO UPDATE SET
			customer_id = COALESCE(EXCLUDED.customer_id, abandoned_carts.customer_id),
			email = COALESCE(EXCLUDED.email, abandoned_carts.email),
			phone = COALESCE(EXCLUDED.phone, abandoned_carts.phone),
			items = EXCLUDED.items,
			subtotal = EXCLUDED.subtotal,
			item_count = EXCLUDED.item_count,
			recovery_status = CASE WHEN abandoned_carts.recovery_status = 'unsubscribed' THEN 'unsubscribed' ELSE 'active' END,
			recovery_emails_sent = CASE WHEN abandoned_carts.recovery_status = 'active' THEN abandoned_carts.recovery_emails_sent ELSE 0 END,
			last_email_sent_at = CASE WHEN abandoned_carts.recovery_status = 'active' THEN abandoned_carts.last_email_sent_at ELSE NULL END,
			abandoned_at = NULL,
			expires_at = NULL,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + cartColumns

	saved, err := scanCart(r.pool.QueryRow(ctx, query,
		c.ID, c.StoreID, key, c.CustomerID, c.Email, c.Phone, items, c.Subtotal, c.ItemCount,
		c.RecoveryToken, c.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert cart: %w", err)
	}
	return saved, nil
}

func (r *CartRepo) ListIdle(ctx context.Context, storeID string, idleBefore time.Time, maxEmails int) ([]domain.AbandonedCart, error) {
	query := `SELECT ` + cartColumns + ` FROM abandoned_carts
		WHERE store_id = $1 AND recovery_status = 'active' AND updated_at < $2
			AND recovery_emails_sent < $3 AND email IS NOT NULL AND item_count > 0
		ORDER BY updated_at
		LIMIT $4`

	rows, err := r.pool.Query(ctx, query, storeID, idleBefore, maxEmails, idleBatchSize)
	if err != nil {
		return nil, fmt.Errorf("list idle carts: %w", err)
	}
	defer rows.Close()

	var carts []domain.AbandonedCart
	for rows.Next() {
		c, err := scanCart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart: %w", err)
		}
		carts = append(carts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate carts: %w", err)
	}
	return carts, nil
}

func (r *CartRepo) MarkAbandoned(ctx context.Context, id string, abandonedAt, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE abandoned_carts SET abandoned_at = $2, expires_at = $3 WHERE id = $1 AND abandoned_at IS NULL`,
		id, abandonedAt, expiresAt)
	if err != nil {
		return fmt.Errorf("mark cart abandoned: %w", err)
	}
	return nil
}

func (r *CartRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE abandoned_carts SET recovery_status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update cart status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecordEmailSent leaves updated_at alone so the idle clock keeps running.
func (r *CartRepo) RecordEmailSent(ctx context.Context, id string, sentAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE abandoned_carts SET recovery_emails_sent = recovery_emails_sent + 1, last_email_sent_at = $2 WHERE id = $1`,
		id, sentAt)
	if err != nil {
		return fmt.Errorf("record recovery email: %w", err)
	}
	return nil
}

func (r *CartRepo) MarkRecovered(ctx context.Context, storeID, email string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE abandoned_carts SET recovery_status = 'recovered', updated_at = NOW()
		WHERE store_id = $1 AND email = $2 AND recovery_status = 'active'`,
		storeID, email)
	if err != nil {
		return 0, fmt.Errorf("mark cart recovered: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CartRepo) GetByToken(ctx context.Context, token string) (*domain.AbandonedCart, error) {
	c, err := scanCart(r.pool.QueryRow(ctx, `SELECT `+cartColumns+` FROM abandoned_carts WHERE recovery_token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart by token: %w", err)
	}
	return c, nil
}
