package postgres

import (
	"context"
	"fmt"

	"storekit-backend/internal/domain"
)

type NotificationLogRepo struct {
	pool Pool
}

func NewNotificationLogRepo(pool Pool) *NotificationLogRepo {
	return &NotificationLogRepo{pool: pool}
}

func (r *NotificationLogRepo) Create(ctx context.Context, l *domain.NotificationLog) error {
	query := `INSERT INTO notification_logs (id, store_id, recipient, channel, template, status, attempts, message_id, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		l.ID, nullable(l.StoreID), l.Recipient, l.Channel, l.Template, l.Status,
		l.Attempts, nullable(l.MessageID), nullable(l.Error), l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification log: %w", err)
	}
	return nil
}
