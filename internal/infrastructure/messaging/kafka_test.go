package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storekit-backend/internal/domain"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	fetchErrs []error
	committed []int64
	drained   chan struct{}
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	return &fakeReader{msgs: msgs, drained: make(chan struct{})}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		r.mu.Unlock()
		return kafka.Message{}, err
	}
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	select {
	case <-r.drained:
	default:
		close(r.drained)
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

type recordingHandler struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	fail   map[string]bool
}

func (h *recordingHandler) HandleOrderEvent(ctx context.Context, evt domain.OrderEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, evt)
	if h.fail[evt.OrderID] {
		return errors.New("handler failed")
	}
	return nil
}

func runUntilDrained(t *testing.T, c *OrderEventConsumer, r *fakeReader) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case <-r.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not drain messages")
	}
	cancel()
	require.NoError(t, <-done)
}

func TestOrderEventConsumer_CommitsHandledAndMalformed(t *testing.T) {
	r := newFakeReader(
		kafka.Message{Offset: 1, Value: []byte(`{"type":"order.shipped","orderId":"o1","storeId":"s1","phone":"9876543210"}`)},
		kafka.Message{Offset: 2, Value: []byte(`not json`)},
		kafka.Message{Offset: 3, Value: []byte(`{"type":"order.delivered","orderId":"o3"}`)},
	)
	h := &recordingHandler{fail: map[string]bool{"o3": true}}
	c := newOrderEventConsumer(r, h, zerolog.Nop())

	runUntilDrained(t, c, r)

	require.Len(t, h.events, 2)
	assert.Equal(t, domain.OrderEventShipped, h.events[0].Type)
	assert.Equal(t, "s1", h.events[0].StoreID)
	assert.Equal(t, []int64{1, 2}, r.committed, "failed event stays uncommitted")
}

func TestOrderEventConsumer_RetriesFetchErrors(t *testing.T) {
	r := newFakeReader(kafka.Message{Offset: 7, Value: []byte(`{"type":"order.confirmed","orderId":"o7"}`)})
	r.fetchErrs = []error{errors.New("broker unavailable")}
	h := &recordingHandler{}
	c := newOrderEventConsumer(r, h, zerolog.Nop())
	c.retryDelay = time.Millisecond

	runUntilDrained(t, c, r)

	require.Len(t, h.events, 1)
	assert.Equal(t, []int64{7}, r.committed)
}
