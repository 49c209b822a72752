package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeRowColumns() []string {
	return []string{"id", "name", "slug", "messaging_notifications_enabled", "messaging_verified",
		"messaging_auth_key_enc", "messaging_integrated_number", "recovery_enabled", "recovery_sequence",
		"created_at", "updated_at"}
}

func TestStoreRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStoreRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	mock.ExpectQuery("SELECT .+ FROM stores WHERE id").
		WithArgs("store-1").
		WillReturnRows(pgxmock.NewRows(storeRowColumns()).AddRow(
			"store-1", "Chai Co", "chai-co", true, true, "deadbeef", "918000000000",
			true, []byte(`[{"delayHours":1},{"delayHours":24,"discountCode":"BACK10","discountPercent":10}]`),
			now, now,
		))

	s, err := repo.GetByID(context.Background(), "store-1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, s.Messaging.HasCustomCredentials())
	require.Len(t, s.Recovery.Sequence, 2)
	assert.Equal(t, "BACK10", s.Recovery.Sequence[1].DiscountCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM stores WHERE id").WithArgs("nope").WillReturnError(pgx.ErrNoRows)

	s, err := NewStoreRepo(mock).GetByID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestStoreRepo_ListRecoveryEnabled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM stores WHERE recovery_enabled").
		WillReturnRows(pgxmock.NewRows(storeRowColumns()).
			AddRow("a", "A", "a", false, false, "", "", true, []byte(`[]`), now, now).
			AddRow("b", "B", "b", false, false, "", "", true, []byte(`[{"delayHours":2}]`), now, now))

	stores, err := NewStoreRepo(mock).ListRecoveryEnabled(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "b", stores[1].ID)
	assert.Len(t, stores[1].Recovery.Sequence, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
