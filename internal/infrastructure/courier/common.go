package courier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"storekit-backend/internal/domain"
	"storekit-backend/pkg/metrics"

	"github.com/goccy/go-json"
)

const errNotConfigured = "not configured"

var ErrNotConfigured = errors.New(errNotConfigured)

var ist = time.FixedZone("IST", 5*60*60+30*60)

// statusError is returned for non-2xx courier responses.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("courier api error (status %d): %s", e.code, e.body)
}

func isUnauthorized(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusUnauthorized
}

// doJSON sends an optional JSON body and decodes a JSON response into out.
func doJSON(ctx context.Context, client *http.Client, method, endpoint string, header http.Header, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return do(client, req, out)
}

// doForm posts a form-encoded body.
func doForm(ctx context.Context, client *http.Client, endpoint string, header http.Header, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return do(client, req, out)
}

func do(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("courier request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// observe starts a latency timer; call the returned func with the outcome.
func observe(provider, operation string) func(ok bool) {
	start := time.Now()
	return func(ok bool) {
		outcome := "success"
		if !ok {
			outcome = "error"
		}
		metrics.CourierCallsTotal.WithLabelValues(provider, operation, outcome).Inc()
		metrics.CourierCallLatency.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
	}
}

// weightGrams converts kilograms to whole grams, never below one gram.
func weightGrams(kg float64) int {
	g := int(math.Ceil(math.Round(kg*1e6) / 1e3))
	if g < 1 {
		return 1
	}
	return g
}

func isCOD(paymentMethod string) bool {
	return strings.EqualFold(paymentMethod, domain.PaymentMethodCOD)
}

// pickRates returns the cheapest and fastest options. Ties keep the first.
func pickRates(rates []domain.Rate) (cheapest, fastest *domain.Rate) {
	for i := range rates {
		r := &rates[i]
		if cheapest == nil || r.Rate < cheapest.Rate {
			cheapest = r
		}
		if r.EstimatedDays > 0 && (fastest == nil || r.EstimatedDays < fastest.EstimatedDays) {
			fastest = r
		}
	}
	if fastest == nil {
		fastest = cheapest
	}
	return cheapest, fastest
}

func rateResult(rates []domain.Rate) domain.RateResult {
	if len(rates) == 0 {
		return domain.RateResult{Success: false, Rates: []domain.Rate{}, Error: "no couriers available for this route"}
	}
	cheapest, fastest := pickRates(rates)
	c, f := *cheapest, *fastest
	return domain.RateResult{Success: true, Rates: rates, Cheapest: &c, Fastest: &f}
}

// NormalizeStatus maps a courier's free-text status onto the shared vocabulary.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return domain.ShipmentStatusUnknown
	case strings.Contains(s, "rto") || strings.Contains(s, "return"):
		return domain.ShipmentStatusRTO
	case strings.Contains(s, "cancel"):
		return domain.ShipmentStatusCancelled
	case strings.Contains(s, "undelivered"):
		return domain.ShipmentStatusInTransit
	case strings.Contains(s, "out for delivery"):
		return domain.ShipmentStatusOutForDelivery
	case strings.Contains(s, "delivered"):
		return domain.ShipmentStatusDelivered
	case strings.Contains(s, "not picked"), strings.Contains(s, "manifest"),
		strings.Contains(s, "pending"), strings.Contains(s, "scheduled"), s == "new":
		return domain.ShipmentStatusPending
	case strings.Contains(s, "picked"), strings.Contains(s, "pickup done"), strings.Contains(s, "pickup complete"):
		return domain.ShipmentStatusPickedUp
	case strings.Contains(s, "pickup"):
		return domain.ShipmentStatusPending
	case strings.Contains(s, "transit"), strings.Contains(s, "dispatch"),
		strings.Contains(s, "reached"), strings.Contains(s, "shipped"):
		return domain.ShipmentStatusInTransit
	}
	return domain.ShipmentStatusUnknown
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseCourierTime reads the timestamp formats couriers send; zone-less values are IST.
func parseCourierTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, ist); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sortEvents orders tracking events newest first.
func sortEvents(events []domain.TrackingEvent) {
	slices.SortStableFunc(events, func(a, b domain.TrackingEvent) int {
		return b.Date.Compare(a.Date)
	})
}

func errorString(err error) string {
	var se *statusError
	if errors.As(err, &se) && se.body != "" {
		return se.body
	}
	return err.Error()
}
