package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storekit-backend/internal/domain"

	"github.com/goccy/go-json"
)

var ErrUnknownTemplate = errors.New("unknown email template")

// ResendClient delivers transactional email through the Resend HTTP API.
type ResendClient struct {
	apiKey     string
	baseURL    string
	from       string
	templates  map[string]emailTemplate
	httpClient *http.Client
}

func NewResendClient(apiKey, baseURL, from string, timeout time.Duration) *ResendClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ResendClient{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		from:      from,
		templates: parseTemplates(),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured is false without an API key; the dispatcher then logs instead of sending.
func (c *ResendClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendEmailResponse struct {
	ID string `json:"id"`
}

func (c *ResendClient) SendTemplate(ctx context.Context, msg domain.OutboundMessage) (domain.ProviderResponse, error) {
	tmpl, ok := c.templates[msg.Template]
	if !ok {
		// Reported like a 4xx so the dispatcher does not retry it.
		return domain.ProviderResponse{StatusCode: http.StatusUnprocessableEntity}, fmt.Errorf("%w: %s", ErrUnknownTemplate, msg.Template)
	}
	subject, html, err := tmpl.render(msg.Params)
	if err != nil {
		return domain.ProviderResponse{StatusCode: http.StatusUnprocessableEntity}, err
	}

	body, err := json.Marshal(sendEmailRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return domain.ProviderResponse{}, fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return domain.ProviderResponse{}, fmt.Errorf("failed to build resend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ProviderResponse{}, fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	out := domain.ProviderResponse{StatusCode: resp.StatusCode}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, fmt.Errorf("resend error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed sendEmailResponse
	if err := json.Unmarshal(raw, &parsed); err == nil {
		out.MessageID = parsed.ID
	}
	return out, nil
}
