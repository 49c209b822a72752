package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storekit-backend/internal/domain"
	"storekit-backend/pkg/apperror"
	"storekit-backend/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zoobzio/clockz"
)

const sweepLockKey = "recovery:sweep"

// Locker guards the sweep so only one instance runs it at a time.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

type RecoveryConfig struct {
	IdleThreshold time.Duration
	CartTTL       time.Duration
	MinEmailGap   time.Duration
	MaxEmails     int
	LockTTL       time.Duration
	FrontendURL   string
}

// DefaultRecoveryConfig: 1h idle, 7 day expiry, 4h between emails, 3 emails.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{
		IdleThreshold: time.Hour,
		CartTTL:       7 * 24 * time.Hour,
		MinEmailGap:   4 * time.Hour,
		MaxEmails:     3,
		LockTTL:       10 * time.Minute,
	}
}

type RecoveryUsecase struct {
	stores   domain.StoreRepository
	carts    domain.CartRepository
	notifier domain.Notifier
	locker   Locker
	cfg      RecoveryConfig
	clock    clockz.Clock
	log      zerolog.Logger
}

func NewRecoveryUsecase(stores domain.StoreRepository, carts domain.CartRepository, notifier domain.Notifier, cfg RecoveryConfig, log zerolog.Logger) *RecoveryUsecase {
	return &RecoveryUsecase{
		stores:   stores,
		carts:    carts,
		notifier: notifier,
		cfg:      cfg,
		clock:    clockz.RealClock,
		log:      log,
	}
}

func (u *RecoveryUsecase) WithClock(clock clockz.Clock) *RecoveryUsecase {
	u.clock = clock
	return u
}

// WithLocker enables the distributed sweep lock.
func (u *RecoveryUsecase) WithLocker(l Locker) *RecoveryUsecase {
	u.locker = l
	return u
}

// ProcessAbandonedCarts runs one sweep over every store with recovery
// enabled. Running it twice in a row sends nothing new: the email counter
// and the minimum gap gate every send.
func (u *RecoveryUsecase) ProcessAbandonedCarts(ctx context.Context) (domain.RecoveryReport, error) {
	var report domain.RecoveryReport

	if u.locker != nil {
		ok, err := u.locker.AcquireLock(ctx, sweepLockKey, u.cfg.LockTTL)
		if err != nil {
			return report, fmt.Errorf("acquire sweep lock: %w", err)
		}
		if !ok {
			u.log.Info().Msg("recovery sweep already running elsewhere, skipping")
			report.Skipped = true
			return report, nil
		}
		defer func() {
			if err := u.locker.ReleaseLock(context.WithoutCancel(ctx), sweepLockKey); err != nil {
				u.log.Warn().Err(err).Msg("failed to release sweep lock")
			}
		}()
	}

	stores, err := u.stores.ListRecoveryEnabled(ctx)
	if err != nil {
		return report, fmt.Errorf("list recovery stores: %w", err)
	}

	for i := range stores {
		u.processStore(ctx, &stores[i], &report)
	}

	u.log.Info().
		Int("processed", report.Processed).
		Int("emails_sent", report.EmailsSent).
		Int("expired", report.Expired).
		Int("errors", report.Errors).
		Msg("recovery sweep finished")
	return report, nil
}

func (u *RecoveryUsecase) processStore(ctx context.Context, store *domain.Store, report *domain.RecoveryReport) {
	if !store.Recovery.Enabled || len(store.Recovery.Sequence) == 0 {
		return
	}

	now := u.clock.Now()
	carts, err := u.carts.ListIdle(ctx, store.ID, now.Add(-u.cfg.IdleThreshold), u.cfg.MaxEmails)
	if err != nil {
		report.Errors++
		metrics.RecoverySweepErrorsTotal.Inc()
		u.log.Error().Err(err).Str("store_id", store.ID).Msg("failed to list idle carts")
		return
	}

	for i := range carts {
		report.Processed++
		if err := u.processCart(ctx, store, &carts[i], now, report); err != nil {
			report.Errors++
			metrics.RecoverySweepErrorsTotal.Inc()
			u.log.Error().Err(err).Str("store_id", store.ID).Str("cart_id", carts[i].ID).Msg("recovery failed for cart")
		}
	}
}

func (u *RecoveryUsecase) processCart(ctx context.Context, store *domain.Store, cart *domain.AbandonedCart, now time.Time, report *domain.RecoveryReport) error {
	if cart.Email == nil || *cart.Email == "" || cart.RecoveryEmailsSent >= u.cfg.MaxEmails {
		return nil
	}

	if cart.AbandonedAt == nil {
		abandonedAt := cart.UpdatedAt
		expiresAt := abandonedAt.Add(u.cfg.CartTTL)
		if err := u.carts.MarkAbandoned(ctx, cart.ID, abandonedAt, expiresAt); err != nil {
			return fmt.Errorf("mark abandoned: %w", err)
		}
		cart.AbandonedAt = &abandonedAt
		cart.ExpiresAt = &expiresAt
	}
	if cart.ExpiresAt == nil {
		expiresAt := cart.AbandonedAt.Add(u.cfg.CartTTL)
		cart.ExpiresAt = &expiresAt
	}

	if !now.Before(*cart.ExpiresAt) {
		if err := u.carts.UpdateStatus(ctx, cart.ID, domain.RecoveryStatusExpired); err != nil {
			return fmt.Errorf("expire cart: %w", err)
		}
		report.Expired++
		metrics.RecoveryCartsExpiredTotal.Inc()
		return nil
	}

	hoursElapsed := now.Sub(*cart.AbandonedAt).Hours()
	step, due := DueStep(store.Recovery.Sequence, cart.RecoveryEmailsSent, hoursElapsed, cart.LastEmailSentAt, now, u.cfg.MinEmailGap)
	if !due {
		return nil
	}

	res := u.notifier.Send(ctx, domain.SendRequest{
		To:       *cart.Email,
		Template: domain.TemplateAbandonedCart,
		Params:   u.recoveryParams(store, cart, step),
		StoreID:  store.ID,
	})
	if !res.Success {
		return fmt.Errorf("send recovery email %d: %s", step+1, res.Error)
	}

	if err := u.carts.RecordEmailSent(ctx, cart.ID, now); err != nil {
		return fmt.Errorf("record email sent: %w", err)
	}
	report.EmailsSent++
	metrics.RecoveryEmailsSentTotal.Inc()
	return nil
}

// DueStep returns the sequence index to send now, if any. Index i is due
// when fewer than i+1 emails went out and its delay has elapsed; nothing is
// due within minGap of the previous email. At most one step is returned.
func DueStep(sequence []domain.RecoveryStep, emailsSent int, hoursElapsed float64, lastSentAt *time.Time, now time.Time, minGap time.Duration) (int, bool) {
	if lastSentAt != nil && now.Sub(*lastSentAt) < minGap {
		return -1, false
	}
	for i, step := range sequence {
		if emailsSent <= i && hoursElapsed >= step.DelayHours {
			return i, true
		}
	}
	return -1, false
}

// recoveryParams: store name, item count, subtotal, recovery link, then
// discount code and percent on the last step.
func (u *RecoveryUsecase) recoveryParams(store *domain.Store, cart *domain.AbandonedCart, step int) []string {
	params := []string{
		store.Name,
		strconv.Itoa(cart.ItemCount),
		strconv.FormatFloat(cart.Subtotal, 'f', 2, 64),
		u.recoveryURL(cart.RecoveryToken),
	}
	seq := store.Recovery.Sequence
	if step == len(seq)-1 && seq[step].DiscountCode != "" {
		params = append(params,
			seq[step].DiscountCode,
			strconv.FormatFloat(seq[step].DiscountPercent, 'f', -1, 64),
		)
	}
	return params
}

func (u *RecoveryUsecase) recoveryURL(token string) string {
	return strings.TrimSuffix(u.cfg.FrontendURL, "/") + "/recover/" + token
}

// SaveCartInput is a storefront cart snapshot.
type SaveCartInput struct {
	CustomerID *string           `json:"customerId,omitempty"`
	Email      *string           `json:"email,omitempty"`
	Phone      *string           `json:"phone,omitempty"`
	Items      []domain.CartLine `json:"items"`
}

// SaveCart upserts the store's single active cart for this email or
// customer and restarts its idle timer.
func (u *RecoveryUsecase) SaveCart(ctx context.Context, storeID string, in SaveCartInput) (*domain.AbandonedCart, error) {
	email := trimmedOrNil(in.Email)
	customerID := trimmedOrNil(in.CustomerID)
	if email == nil && customerID == nil {
		return nil, apperror.ErrMissingCartIdentity()
	}
	if email != nil {
		lower := strings.ToLower(*email)
		if !emailRe.MatchString(lower) {
			return nil, apperror.Validation(ErrInvalidEmail.Error())
		}
		email = &lower
	}

	var itemCount int
	for _, it := range in.Items {
		if it.Quantity < 0 || it.UnitPrice < 0 {
			return nil, apperror.Validation("cart lines must not be negative")
		}
		itemCount += it.Quantity
	}

	now := u.clock.Now()
	cart := &domain.AbandonedCart{
		ID:             uuid.NewString(),
		StoreID:        storeID,
		CustomerID:     customerID,
		Email:          email,
		Phone:          trimmedOrNil(in.Phone),
		Items:          in.Items,
		Subtotal:       lineSubtotal(in.Items),
		ItemCount:      itemCount,
		RecoveryStatus: domain.RecoveryStatusActive,
		RecoveryToken:  uuid.NewString(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	saved, err := u.carts.Upsert(ctx, cart)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("upsert cart: %w", err))
	}
	return saved, nil
}

// MarkRecovered closes the active cart for a store+email once an order
// completes.
func (u *RecoveryUsecase) MarkRecovered(ctx context.Context, storeID, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	n, err := u.carts.MarkRecovered(ctx, storeID, email)
	if err != nil {
		return fmt.Errorf("mark cart recovered: %w", err)
	}
	if n > 0 {
		u.log.Info().Str("store_id", storeID).Int64("carts", n).Msg("abandoned cart recovered")
	}
	return nil
}

func (u *RecoveryUsecase) GetByToken(ctx context.Context, token string) (*domain.AbandonedCart, error) {
	cart, err := u.carts.GetByToken(ctx, token)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if cart == nil {
		return nil, apperror.ErrCartNotFound()
	}
	return cart, nil
}

// Unsubscribe opts the cart out of further reminders.
func (u *RecoveryUsecase) Unsubscribe(ctx context.Context, token string) error {
	cart, err := u.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if cart.RecoveryStatus == domain.RecoveryStatusUnsubscribed {
		return nil
	}
	if err := u.carts.UpdateStatus(ctx, cart.ID, domain.RecoveryStatusUnsubscribed); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
