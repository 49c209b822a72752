package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"storekit-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func cartRowColumns() []string {
	return []string{"id", "store_id", "customer_id", "email", "phone", "items", "subtotal", "item_count",
		"recovery_status", "recovery_emails_sent", "recovery_token",
		"abandoned_at", "expires_at", "last_email_sent_at", "created_at", "updated_at"}
}

func cartRow(c *domain.AbandonedCart) *pgxmock.Rows {
	return pgxmock.NewRows(cartRowColumns()).AddRow(
		c.ID, c.StoreID, c.CustomerID, c.Email, c.Phone,
		[]byte(`[{"productId":"p1","name":"Mug","quantity":2,"unitPrice":320}]`),
		c.Subtotal, c.ItemCount, c.RecoveryStatus, c.RecoveryEmailsSent, c.RecoveryToken,
		c.AbandonedAt, c.ExpiresAt, c.LastEmailSentAt, c.CreatedAt, c.UpdatedAt,
	)
}

func newTestCart() *domain.AbandonedCart {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.AbandonedCart{
		ID:             "cart-1",
		StoreID:        "store-1",
		Email:          strPtr("asha@example.com"),
		Items:          []domain.CartLine{{ProductID: "p1", Name: "Mug", Quantity: 2, UnitPrice: 320}},
		Subtotal:       640,
		ItemCount:      2,
		RecoveryStatus: domain.RecoveryStatusActive,
		RecoveryToken:  "tok-1",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCartKey(t *testing.T) {
	k, err := cartKey(&domain.AbandonedCart{Email: strPtr("a@b.co"), CustomerID: strPtr("c1")})
	require.NoError(t, err)
	assert.Equal(t, "email:a@b.co", k)

	k, err = cartKey(&domain.AbandonedCart{CustomerID: strPtr("c1")})
	require.NoError(t, err)
	assert.Equal(t, "customer:c1", k)

	_, err = cartKey(&domain.AbandonedCart{})
	assert.Error(t, err)
}

func TestCartRepo_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	c := newTestCart()
	mock.ExpectQuery("INSERT INTO abandoned_carts").
		WithArgs(c.ID, c.StoreID, "email:asha@example.com", c.CustomerID, c.Email, c.Phone,
			pgxmock.AnyArg(), c.Subtotal, c.ItemCount, c.RecoveryToken, c.UpdatedAt).
		WillReturnRows(cartRow(c))

	saved, err := NewCartRepo(mock).Upsert(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "cart-1", saved.ID)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "Mug", saved.Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_ListIdle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	c := newTestCart()
	cutoff := time.Now().Add(-time.Hour)
	mock.ExpectQuery("SELECT .+ FROM abandoned_carts").
		WithArgs("store-1", cutoff, 3, idleBatchSize).
		WillReturnRows(cartRow(c))

	carts, err := NewCartRepo(mock).ListIdle(context.Background(), "store-1", cutoff, 3)
	require.NoError(t, err)
	require.Len(t, carts, 1)
	assert.Equal(t, "asha@example.com", *carts[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_Transitions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCartRepo(mock)
	now := time.Now().UTC()
	ctx := context.Background()

	mock.ExpectExec("UPDATE abandoned_carts SET abandoned_at").
		WithArgs("cart-1", now, now.Add(7*24*time.Hour)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE abandoned_carts SET recovery_emails_sent").
		WithArgs("cart-1", now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE abandoned_carts SET recovery_status = \\$2").
		WithArgs("cart-1", domain.RecoveryStatusExpired).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE abandoned_carts SET recovery_status = 'recovered'").
		WithArgs("store-1", "asha@example.com").
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	require.NoError(t, repo.MarkAbandoned(ctx, "cart-1", now, now.Add(7*24*time.Hour)))
	require.NoError(t, repo.RecordEmailSent(ctx, "cart-1", now))
	require.NoError(t, repo.UpdateStatus(ctx, "cart-1", domain.RecoveryStatusExpired))
	n, err := repo.MarkRecovered(ctx, "store-1", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_UpdateStatusMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE abandoned_carts SET recovery_status").
		WithArgs("ghost", domain.RecoveryStatusUnsubscribed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = NewCartRepo(mock).UpdateStatus(context.Background(), "ghost", domain.RecoveryStatusUnsubscribed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartRepo_GetByToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCartRepo(mock)
	c := newTestCart()
	mock.ExpectQuery("SELECT .+ FROM abandoned_carts WHERE recovery_token").
		WithArgs("tok-1").WillReturnRows(cartRow(c))
	mock.ExpectQuery("SELECT .+ FROM abandoned_carts WHERE recovery_token").
		WithArgs("nope").WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT .+ FROM abandoned_carts WHERE recovery_token").
		WithArgs("boom").WillReturnError(errors.New("conn reset"))

	got, err := repo.GetByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.RecoveryToken)

	got, err = repo.GetByToken(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = repo.GetByToken(context.Background(), "boom")
	assert.Error(t, err)
}
