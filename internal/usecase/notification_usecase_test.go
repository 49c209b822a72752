package usecase

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"storekit-backend/internal/domain"
	"storekit-backend/internal/domain/mocks"
	"storekit-backend/internal/infrastructure/cache"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type dispatcherFixture struct {
	stores    *mocks.MockStoreRepository
	decrypter *mocks.MockCredentialDecrypter
	whatsapp  *mocks.MockWhatsAppProvider
	email     *mocks.MockEmailProvider
	logs      *mocks.MockNotificationLogRepository
	audit     *bytes.Buffer
	sleeps    []time.Duration
	d         *Dispatcher
}

func newDispatcherFixture(t *testing.T, cfg DispatcherConfig) *dispatcherFixture {
	ctrl := gomock.NewController(t)
	f := &dispatcherFixture{
		stores:    mocks.NewMockStoreRepository(ctrl),
		decrypter: mocks.NewMockCredentialDecrypter(ctrl),
		whatsapp:  mocks.NewMockWhatsAppProvider(ctrl),
		email:     mocks.NewMockEmailProvider(ctrl),
		logs:      mocks.NewMockNotificationLogRepository(ctrl),
		audit:     &bytes.Buffer{},
	}
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.d = NewDispatcher(f.stores, f.decrypter, cache.NewMemoryCache(time.Minute, time.Minute),
		f.whatsapp, f.email, f.logs, cfg, newTestLogger()).
		WithSleep(func(d time.Duration) { f.sleeps = append(f.sleeps, d) }).
		WithJitter(func() time.Duration { return 0 }).
		WithAuditLogger(zerolog.New(f.audit))
	return f
}

func platformConfig() DispatcherConfig {
	return DispatcherConfig{PlatformAuthKey: "platform-key", PlatformIntegratedNumber: "919000000000"}
}

func (f *dispatcherFixture) auditLines(t *testing.T) []map[string]interface{} {
	var out []map[string]interface{}
	sc := bufio.NewScanner(bytes.NewReader(f.audit.Bytes()))
	for sc.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		out = append(out, line)
	}
	return out
}

func TestDispatcher_RetryCapOn500(t *testing.T) {
	f := newDispatcherFixture(t, platformConfig())
	f.whatsapp.EXPECT().SendTemplate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ProviderResponse{StatusCode: 500}, errors.New("provider error (status 500)")).
		Times(3)

	res := f.d.Send(context.Background(), domain.SendRequest{To: "9876543210", Template: domain.TemplateOrderShipped})

	assert.False(t, res.Success)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, "provider error (status 500)", res.Error)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, f.sleeps)

	lines := f.auditLines(t)
	statuses := make([]string, 0, len(lines))
	for _, l := range lines {
		statuses = append(statuses, l["status"].(string))
	}
	assert.Equal(t, []string{"attempt", "retry", "attempt", "retry", "attempt", "failed"}, statuses)
	last := lines[len(lines)-1]
	assert.Equal(t, "919876543210", last["phone"])
	assert.Equal(t, float64(3), last["attempt"])
	assert.Equal(t, float64(3), last["max_attempts"])
}

func TestDispatcher_NonRetryable404(t *testing.T) {
	f := newDispatcherFixture(t, platformConfig())
	f.whatsapp.EXPECT().SendTemplate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ProviderResponse{StatusCode: 404}, errors.New("provider error (status 404)")).
		Times(1)

	res := f.d.Send(context.Background(), domain.SendRequest{To: "9876543210", Template: domain.TemplateOrderShipped})

	assert.False(t, res.Success)
	assert.Equal(t, 1, res.Attempts)
	assert.Empty(t, f.sleeps)
}

func TestDispatcher_RetryThenSuccess(t *testing.T) {
	f := newDispatcherFixture(t, platformConfig())
	gomock.InOrder(
		f.whatsapp.EXPECT().SendTemplate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.ProviderResponse{StatusCode: 429}, errors.New("rate limited")),
		f.whatsapp.EXPECT().SendTemplate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.ProviderResponse{}, errors.New("dial tcp: connection refused")),
		f.whatsapp.EXPECT().SendTemplate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.ProviderResponse{StatusCode: 200, MessageID: "req-123"}, nil),
	)

	res := f.d.Send(context.Background(), domain.SendRequest{To: "+91 98765 43210", Template: domain.TemplateOrderConfirmation})

	assert.True(t, res.Success)
	assert.Equal(t, "req-123", res.MessageID)
	assert.Equal(t, 3, res.Attempts)
}

func TestDispatcher_InvalidPhoneFailsFast(t *testing.T) {
	f := newDispatcherFixture(t, platformConfig())
	f.whatsapp.EXPECT().SendTemplate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res := f.d.Send(context.Background(), domain.SendRequest{To: "12345", Template: domain.TemplateOrderShipped})

	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Attempts)
	assert.Equal(t, ErrInvalidPhone.Error(), res.Error)
}

func TestDispatcher_NoCredentialsLogsOnly(t *testing.T) {
	f := newDispatcherFixture(t, DispatcherConfig{})
	f.whatsapp.EXPECT().SendTemplate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res := f.d.Send(context.Background(), domain.SendRequest{To: "9876543210", Template: domain.TemplateCODReminder})

	assert.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.MessageID, MockMessageIDPrefix))
	lines := f.auditLines(t)
	require.Len(t, lines, 1)
	assert.Equal(t, "mocked", lines[0]["status"])
}

func TestDispatcher_StoreCredentialsAreCached(t *testing.T) {
	f := newDispatcherFixture(t, platformConfig())
	store := &domain.Store{
		ID: "store-1",
		Messaging: domain.MessagingSettings{
			NotificationsEnabled: true,
			Verified:             true,
			AuthKeyEnc:           "cipher",
			IntegratedNumber:     "918888888888",
		},
	}
	f.stores.EXPECT().GetByID(gomock.Any(), "store-1").Return(store, nil).Times(1)
	f.decrypter.EXPECT().Decrypt("cipher").Return("store-key", nil).Times(1)
	f.whatsapp.EXPECT().
		SendTemplate(gomock.Any(), domain.MessagingCredentials{AuthKey: "store-key", IntegratedNumber: "918888888888", Source: domain.CredentialSourceStore}, gomock.Any()).
		Return(domain.ProviderResponse{StatusCode: 200, MessageID: "m"}, nil).
		Times(2)

	req := domain.SendRequest{To: "9876543210", Template: domain.TemplateOrderDelivered, StoreID: "store-1"}
	assert.True(t, f.d.Send(context.Background(), req).Success)
	assert.True(t, f.d.Send(context.Background(), req).Success)
}

func TestDispatcher_StoreCredentialFallbacks(t *testing.T) {
	platform := domain.MessagingCredentials{AuthKey: "platform-key", IntegratedNumber: "919000000000", Source: domain.CredentialSourcePlatform}

	tests := []struct {
		name  string
		setup func(f *dispatcherFixture)
	}{
		{
			name: "notifications disabled",
			setup: func(f *dispatcherFixture) {
				f.stores.EXPECT().GetByID(gomock.Any(), "s").Return(&domain.Store{ID: "s", Messaging: domain.MessagingSettings{
					Verified: true, AuthKeyEnc: "c", IntegratedNumber: "91",
				}}, nil)
			},
		},
		{
			name: "decrypt fails",
			setup: func(f *dispatcherFixture) {
				f.stores.EXPECT().GetByID(gomock.Any(), "s").Return(&domain.Store{ID: "s", Messaging: domain.MessagingSettings{
					NotificationsEnabled: true, Verified: true, AuthKeyEnc: "c", IntegratedNumber: "91",
				}}, nil)
				f.decrypter.EXPECT().Decrypt("c").Return("", errors.New("bad cipher"))
			},
		},
		{
			name: "store lookup fails",
			setup: func(f *dispatcherFixture) {
				f.stores.EXPECT().GetByID(gomock.Any(), "s").Return(nil, errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDispatcherFixture(t, platformConfig())
			tt.setup(f)
			f.whatsapp.EXPECT().SendTemplate(gomock.Any(), platform, gomock.Any()).
				Return(domain.ProviderResponse{StatusCode: 200}, nil)

			res := f.d.Send(context.Background(), domain.SendRequest{To: "9876543210", Template: "t", StoreID: "s"})
			assert.True(t, res.Success)
		})
	}
}

func TestDispatcher_EmailChannel(t *testing.T) {
	f := newDispatcherFixture(t, platformConfig())
	f.email.EXPECT().Configured().Return(true)
	f.email.EXPECT().SendTemplate(gomock.Any(), domain.OutboundMessage{
		To: "asha@example.com", Template: domain.TemplateAbandonedCart, Params: []string{"Shop"},
	}).Return(domain.ProviderResponse{StatusCode: 200, MessageID: "em-1"}, nil)

	res := f.d.Send(context.Background(), domain.SendRequest{To: " Asha@Example.com ", Template: domain.TemplateAbandonedCart, Params: []string{"Shop"}})

	assert.True(t, res.Success)
	assert.Equal(t, "em-1", res.MessageID)
	assert.Equal(t, "asha@example.com", f.auditLines(t)[0]["email"])
}

func TestDispatcher_EmailNotConfigured(t *testing.T) {
	f := newDispatcherFixture(t, platformConfig())
	f.email.EXPECT().Configured().Return(false)

	res := f.d.Send(context.Background(), domain.SendRequest{To: "asha@example.com", Template: domain.TemplateAbandonedCart})
	assert.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.MessageID, MockMessageIDPrefix))
}

func TestDispatcher_InvalidEmail(t *testing.T) {
	f := newDispatcherFixture(t, platformConfig())
	res := f.d.Send(context.Background(), domain.SendRequest{To: "asha@", Template: domain.TemplateAbandonedCart})
	assert.False(t, res.Success)
	assert.Equal(t, ErrInvalidEmail.Error(), res.Error)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		status int
		err    string
		want   bool
	}{
		{500, "", true},
		{503, "", true},
		{429, "", true},
		{400, "", false},
		{401, "", false},
		{404, "", false},
		{0, "dial tcp 10.0.0.1:443: connect: connection refused", true},
		{0, "context deadline exceeded (Client.Timeout exceeded while awaiting headers)", true},
		{0, "read: ECONNRESET", true},
		{0, "unexpected EOF", true},
		{0, "json: unsupported type", false},
		{0, "", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%s", tt.status, tt.err), func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.status, tt.err))
		})
	}
}

func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, time.Second, BackoffDelay(1, 0))
	assert.Equal(t, 2*time.Second+300*time.Millisecond, BackoffDelay(2, 300*time.Millisecond))
	assert.Equal(t, 8*time.Second+500*time.Millisecond, BackoffDelay(4, 500*time.Millisecond))
	assert.Equal(t, 10*time.Second, BackoffDelay(5, 0))
	assert.Equal(t, 10*time.Second, BackoffDelay(30, 0))

	for i := 0; i < 100; i++ {
		j := randomJitter()
		assert.GreaterOrEqual(t, j, time.Duration(0))
		assert.LessOrEqual(t, j, 500*time.Millisecond)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"9876543210", "919876543210", false},
		{"09876543210", "919876543210", false},
		{"+91 98765-43210", "919876543210", false},
		{"919876543210", "919876543210", false},
		{"5876543210", "", true},
		{"12345", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
