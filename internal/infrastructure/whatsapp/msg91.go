package whatsapp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storekit-backend/internal/domain"

	"github.com/goccy/go-json"
)

const bulkTemplatePath = "/api/v5/whatsapp/whatsapp-outbound-message/bulk/"

// MSG91Client sends WhatsApp template messages through the MSG91 bulk API.
// It makes exactly one HTTP call per SendTemplate; retries belong to the caller.
type MSG91Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

func NewMSG91Client(baseURL, language string, timeout time.Duration) *MSG91Client {
	if language == "" {
		language = "en"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &MSG91Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type templateRequest struct {
	IntegratedNumber string          `json:"integrated_number"`
	ContentType      string          `json:"content_type"`
	Payload          templatePayload `json:"payload"`
}

type templatePayload struct {
	To       string       `json:"to"`
	Type     string       `json:"type"`
	Template templateBody `json:"template"`
}

type templateBody struct {
	Name       string              `json:"name"`
	Language   templateLanguage    `json:"language"`
	Components []templateComponent `json:"components"`
}

type templateLanguage struct {
	Code   string `json:"code"`
	Policy string `json:"policy"`
}

type templateComponent struct {
	Type       string              `json:"type"`
	Parameters []templateParameter `json:"parameters"`
}

type templateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type sendResponse struct {
	Status    string `json:"status"`
	HasError  bool   `json:"hasError"`
	RequestID string `json:"request_id"`
	Errors    any    `json:"errors"`
}

func (c *MSG91Client) buildRequest(creds domain.MessagingCredentials, msg domain.OutboundMessage) templateRequest {
	params := make([]templateParameter, len(msg.Params))
	for i, p := range msg.Params {
		params[i] = templateParameter{Type: "text", Text: p}
	}
	var components []templateComponent
	if len(params) > 0 {
		components = []templateComponent{{Type: "body", Parameters: params}}
	}
	return templateRequest{
		IntegratedNumber: creds.IntegratedNumber,
		ContentType:      "template",
		Payload: templatePayload{
			To:   msg.To,
			Type: "template",
			Template: templateBody{
				Name:       msg.Template,
				Language:   templateLanguage{Code: c.language, Policy: "deterministic"},
				Components: components,
			},
		},
	}
}

func (c *MSG91Client) SendTemplate(ctx context.Context, creds domain.MessagingCredentials, msg domain.OutboundMessage) (domain.ProviderResponse, error) {
	body, err := json.Marshal(c.buildRequest(creds, msg))
	if err != nil {
		return domain.ProviderResponse{}, fmt.Errorf("failed to marshal template message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+bulkTemplatePath, bytes.NewReader(body))
	if err != nil {
		return domain.ProviderResponse{}, fmt.Errorf("failed to build msg91 request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("authkey", creds.AuthKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ProviderResponse{}, fmt.Errorf("msg91 request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	out := domain.ProviderResponse{StatusCode: resp.StatusCode}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, fmt.Errorf("msg91 error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed sendResponse
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.HasError || strings.EqualFold(parsed.Status, "fail") {
			return out, fmt.Errorf("msg91 rejected message: %s", strings.TrimSpace(string(raw)))
		}
		out.MessageID = parsed.RequestID
	}
	return out, nil
}
