package postgres

import (
	"context"
	"testing"
	"time"

	"storekit-backend/internal/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationLogRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	entry := &domain.NotificationLog{
		ID: "log-1", Recipient: "919876543210", Channel: domain.ChannelWhatsApp,
		Template: domain.TemplateOrderShipped, Status: domain.NotificationStatusSent,
		Attempts: 2, MessageID: "req-42", CreatedAt: now,
	}

	mock.ExpectExec("INSERT INTO notification_logs").
		WithArgs("log-1", (*string)(nil), "919876543210", domain.ChannelWhatsApp, domain.TemplateOrderShipped,
			domain.NotificationStatusSent, 2, strPtr("req-42"), (*string)(nil), now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewNotificationLogRepo(mock).Create(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))
	assert.NoError(t, NewHealthCheck(mock).Ping(context.Background()))
}
