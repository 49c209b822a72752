package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"regexp"
	"strings"
	"time"

	"storekit-backend/internal/domain"
	"storekit-backend/pkg/cache"
	"storekit-backend/pkg/logger"
	"storekit-backend/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zoobzio/clockz"
)

const (
	defaultMaxAttempts   = 3
	defaultCredentialTTL = 5 * time.Minute
	backoffBase          = time.Second
	backoffMaxJitter     = 500 * time.Millisecond
	backoffCap           = 10 * time.Second

	// MockMessageIDPrefix marks message ids returned when no provider
	// credentials exist and the message was only logged.
	MockMessageIDPrefix = "mock_"
)

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidEmail = errors.New("invalid email address")

	indianMobileRe = regexp.MustCompile(`^91[6-9]\d{9}$`)
	nonDigitRe     = regexp.MustCompile(`\D`)
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	transientErrorMarkers = []string{
		"timeout",
		"deadline exceeded",
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"eof",
		"econnreset",
		"etimedout",
		"econnrefused",
		"enotfound",
		"eai_again",
		"econnaborted",
		"temporary",
	}
)

type DispatcherConfig struct {
	PlatformAuthKey          string
	PlatformIntegratedNumber string
	CredentialTTL            time.Duration
	MaxAttempts              int
}

// Dispatcher delivers templated WhatsApp and email messages with retry.
// Every attempt is written to the audit logger.
type Dispatcher struct {
	stores    domain.StoreRepository
	decrypter domain.CredentialDecrypter
	cache     cache.CacheService
	whatsapp  domain.WhatsAppProvider
	email     domain.EmailProvider
	logs      domain.NotificationLogRepository
	cfg       DispatcherConfig
	clock     clockz.Clock
	sleep     func(time.Duration)
	jitter    func() time.Duration
	log       zerolog.Logger
	audit     zerolog.Logger
}

func NewDispatcher(
	stores domain.StoreRepository,
	decrypter domain.CredentialDecrypter,
	cache cache.CacheService,
	whatsapp domain.WhatsAppProvider,
	email domain.EmailProvider,
	logs domain.NotificationLogRepository,
	cfg DispatcherConfig,
	log zerolog.Logger,
) *Dispatcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.CredentialTTL <= 0 {
		cfg.CredentialTTL = defaultCredentialTTL
	}
	d := &Dispatcher{
		stores:    stores,
		decrypter: decrypter,
		cache:     cache,
		whatsapp:  whatsapp,
		email:     email,
		logs:      logs,
		cfg:       cfg,
		clock:     clockz.RealClock,
		jitter:    randomJitter,
		log:       log,
		audit:     logger.Audit(),
	}
	d.sleep = d.clockSleep
	return d
}

// WithClock swaps the clock used for backoff waits.
func (d *Dispatcher) WithClock(clock clockz.Clock) *Dispatcher {
	d.clock = clock
	return d
}

// WithSleep replaces the backoff wait entirely (tests pass a no-op).
func (d *Dispatcher) WithSleep(fn func(time.Duration)) *Dispatcher {
	d.sleep = fn
	return d
}

func (d *Dispatcher) WithJitter(fn func() time.Duration) *Dispatcher {
	d.jitter = fn
	return d
}

func (d *Dispatcher) WithAuditLogger(l zerolog.Logger) *Dispatcher {
	d.audit = l
	return d
}

func (d *Dispatcher) clockSleep(delay time.Duration) {
	<-d.clock.After(delay)
}

func randomJitter() time.Duration {
	return time.Duration(rand.Int64N(int64(backoffMaxJitter) + 1))
}

// Send delivers one message. It never returns an error; the outcome is in
// the result. Caller cancellation does not abort attempts already under way.
func (d *Dispatcher) Send(ctx context.Context, req domain.SendRequest) domain.SendResult {
	ctx = context.WithoutCancel(ctx)

	channel := domain.ChannelWhatsApp
	if strings.Contains(req.To, "@") {
		channel = domain.ChannelEmail
	}

	to, err := normalizeRecipient(channel, req.To)
	if err != nil {
		d.auditEvent(channel, req, to, 0, domain.NotificationStatusFailed, err.Error(), "")
		metrics.NotificationsFailedTotal.WithLabelValues(req.Template, "validation").Inc()
		d.persist(ctx, req, channel, req.To, domain.NotificationStatusFailed, 0, "", err.Error())
		return domain.SendResult{Success: false, Error: err.Error()}
	}

	msg := domain.OutboundMessage{To: to, Template: req.Template, Params: req.Params}

	var send func(context.Context) (domain.ProviderResponse, error)
	switch channel {
	case domain.ChannelEmail:
		if d.email == nil || !d.email.Configured() {
			return d.mockSend(ctx, channel, req, to)
		}
		send = func(ctx context.Context) (domain.ProviderResponse, error) {
			return d.email.SendTemplate(ctx, msg)
		}
	default:
		creds, ok := d.resolveCredentials(ctx, req.StoreID)
		if !ok || d.whatsapp == nil {
			return d.mockSend(ctx, channel, req, to)
		}
		send = func(ctx context.Context) (domain.ProviderResponse, error) {
			return d.whatsapp.SendTemplate(ctx, creds, msg)
		}
	}

	return d.sendWithRetry(ctx, channel, req, to, send)
}

func (d *Dispatcher) sendWithRetry(
	ctx context.Context,
	channel string,
	req domain.SendRequest,
	to string,
	send func(context.Context) (domain.ProviderResponse, error),
) domain.SendResult {
	maxAttempts := d.cfg.MaxAttempts
	var lastErr string
	reason := "exhausted"
	attempts := 0

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attempts = attempt
		d.auditEvent(channel, req, to, attempt, domain.NotificationStatusAttempt, "", "")

		resp, err := send(ctx)
		if err == nil {
			metrics.NotificationAttemptsTotal.WithLabelValues(channel, "success").Inc()
			metrics.NotificationsSentTotal.WithLabelValues(req.Template, "live").Inc()
			d.auditEvent(channel, req, to, attempt, domain.NotificationStatusSent, "", resp.MessageID)
			d.persist(ctx, req, channel, to, domain.NotificationStatusSent, attempt, resp.MessageID, "")
			return domain.SendResult{Success: true, MessageID: resp.MessageID, Attempts: attempt}
		}

		lastErr = err.Error()
		metrics.NotificationAttemptsTotal.WithLabelValues(channel, "error").Inc()

		if !IsRetryable(resp.StatusCode, lastErr) {
			reason = "permanent"
			break
		}
		if attempt == maxAttempts {
			break
		}

		delay := BackoffDelay(attempt, d.jitter())
		d.auditEvent(channel, req, to, attempt, domain.NotificationStatusRetry, lastErr, "")
		d.log.Debug().Dur("delay", delay).Int("attempt", attempt).Str("template", req.Template).Msg("backing off before retry")
		d.sleep(delay)
	}

	metrics.NotificationsFailedTotal.WithLabelValues(req.Template, reason).Inc()
	d.auditEvent(channel, req, to, attempts, domain.NotificationStatusFailed, lastErr, "")
	d.persist(ctx, req, channel, to, domain.NotificationStatusFailed, attempts, "", lastErr)
	return domain.SendResult{Success: false, Error: lastErr, Attempts: attempts}
}

// mockSend is used when no provider credentials exist. Order processing must
// not block on messaging, so the message is logged and reported as sent.
func (d *Dispatcher) mockSend(ctx context.Context, channel string, req domain.SendRequest, to string) domain.SendResult {
	messageID := MockMessageIDPrefix + uuid.NewString()
	metrics.NotificationsSentTotal.WithLabelValues(req.Template, "mock").Inc()
	d.auditEvent(channel, req, to, 0, domain.NotificationStatusMocked, "", messageID)
	d.log.Info().
		Str("channel", channel).
		Str("to", to).
		Str("template", req.Template).
		Strs("params", req.Params).
		Msg("messaging not configured, message logged only")
	d.persist(ctx, req, channel, to, domain.NotificationStatusMocked, 0, messageID, "")
	return domain.SendResult{Success: true, MessageID: messageID}
}

// resolveCredentials walks cache → store's own credentials → platform.
// ok is false when neither store nor platform credentials exist.
func (d *Dispatcher) resolveCredentials(ctx context.Context, storeID string) (domain.MessagingCredentials, bool) {
	if storeID != "" {
		key := cache.KeyStoreCredentialsPrefix + storeID
		if val, found := d.cache.Get(key); found {
			if creds, ok := val.(domain.MessagingCredentials); ok {
				return creds, true
			}
		}
		if creds, ok := d.storeCredentials(ctx, storeID); ok {
			d.cache.Set(key, creds, d.cfg.CredentialTTL)
			return creds, true
		}
	}

	if d.cfg.PlatformAuthKey != "" && d.cfg.PlatformIntegratedNumber != "" {
		return domain.MessagingCredentials{
			AuthKey:          d.cfg.PlatformAuthKey,
			IntegratedNumber: d.cfg.PlatformIntegratedNumber,
			Source:           domain.CredentialSourcePlatform,
		}, true
	}
	return domain.MessagingCredentials{}, false
}

func (d *Dispatcher) storeCredentials(ctx context.Context, storeID string) (domain.MessagingCredentials, bool) {
	if d.stores == nil || d.decrypter == nil {
		return domain.MessagingCredentials{}, false
	}
	store, err := d.stores.GetByID(ctx, storeID)
	if err != nil {
		d.log.Warn().Err(err).Str("store_id", storeID).Msg("store lookup failed, using platform credentials")
		return domain.MessagingCredentials{}, false
	}
	if store == nil || !store.Messaging.HasCustomCredentials() {
		return domain.MessagingCredentials{}, false
	}
	authKey, err := d.decrypter.Decrypt(store.Messaging.AuthKeyEnc)
	if err != nil {
		d.log.Warn().Err(err).Str("store_id", storeID).Msg("store credentials could not be decrypted, using platform credentials")
		return domain.MessagingCredentials{}, false
	}
	return domain.MessagingCredentials{
		AuthKey:          authKey,
		IntegratedNumber: store.Messaging.IntegratedNumber,
		Source:           domain.CredentialSourceStore,
	}, true
}

func (d *Dispatcher) auditEvent(channel string, req domain.SendRequest, to string, attempt int, status, errStr, messageID string) {
	var ev *zerolog.Event
	switch status {
	case domain.NotificationStatusFailed:
		ev = d.audit.Error()
	case domain.NotificationStatusRetry:
		ev = d.audit.Warn()
	default:
		ev = d.audit.Info()
	}

	recipientKey := "phone"
	if channel == domain.ChannelEmail {
		recipientKey = "email"
	}
	if to == "" {
		to = req.To
	}

	ev = ev.Time("at", d.clock.Now()).
		Str("channel", channel).
		Str(recipientKey, to).
		Str("template", req.Template).
		Int("attempt", attempt).
		Int("max_attempts", d.cfg.MaxAttempts).
		Str("status", status)
	if req.StoreID != "" {
		ev = ev.Str("store_id", req.StoreID)
	}
	if errStr != "" {
		ev = ev.Str("error", errStr)
	}
	if messageID != "" {
		ev = ev.Str("message_id", messageID)
	}
	ev.Msg("notification " + status)
}

func (d *Dispatcher) persist(ctx context.Context, req domain.SendRequest, channel, to, status string, attempts int, messageID, errStr string) {
	if d.logs == nil {
		return
	}
	entry := &domain.NotificationLog{
		ID:        uuid.NewString(),
		StoreID:   req.StoreID,
		Recipient: to,
		Channel:   channel,
		Template:  req.Template,
		Status:    status,
		Attempts:  attempts,
		MessageID: messageID,
		Error:     errStr,
		CreatedAt: d.clock.Now(),
	}
	if err := d.logs.Create(ctx, entry); err != nil {
		d.log.Warn().Err(err).Str("template", req.Template).Msg("failed to persist notification log")
	}
}

// IsRetryable classifies a failed attempt: 5xx, 429 and transient network
// errors retry; any other 4xx is final.
func IsRetryable(statusCode int, errStr string) bool {
	switch {
	case statusCode == http.StatusTooManyRequests || statusCode >= 500:
		return true
	case statusCode >= 400:
		return false
	case statusCode == 0 && errStr != "":
		lower := strings.ToLower(errStr)
		for _, marker := range transientErrorMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}

// BackoffDelay returns min(1s * 2^(attempt-1) + jitter, 10s).
func BackoffDelay(attempt int, jitter time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 5 {
		return backoffCap
	}
	delay := backoffBase*time.Duration(1<<(attempt-1)) + jitter
	if delay > backoffCap {
		return backoffCap
	}
	return delay
}

// NormalizePhone converts an Indian mobile number to 91XXXXXXXXXX.
func NormalizePhone(raw string) (string, error) {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	digits = strings.TrimLeft(digits, "0")
	if len(digits) == 10 {
		digits = "91" + digits
	}
	if !indianMobileRe.MatchString(digits) {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

func normalizeRecipient(channel, to string) (string, error) {
	if channel == domain.ChannelEmail {
		email := strings.ToLower(strings.TrimSpace(to))
		if !emailRe.MatchString(email) {
			return "", ErrInvalidEmail
		}
		return email, nil
	}
	return NormalizePhone(to)
}
