package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// apiClient posts JSON payloads to a bearer-token channel API.
type apiClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
	logger     *logging.Logger
}

func newAPIClient(url, apiKey string, timeout time.Duration, logger *logging.Logger) (*apiClient, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("notification: channel API URL required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &apiClient{
		url:        strings.TrimRight(strings.TrimSpace(url), "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

func (c *apiClient) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notification: marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notification: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification: http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification: channel API status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// digitsOnly strips everything but digits from a phone number, the format
// the channel APIs expect.
func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppClient sends chat messages through the WhatsApp Business API.
type WhatsAppClient struct {
	api *apiClient
}

// NewWhatsAppClient builds a WhatsApp channel client.
func NewWhatsAppClient(url, apiKey string, timeout time.Duration, logger *logging.Logger) (*WhatsAppClient, error) {
	api, err := newAPIClient(url, apiKey, timeout, logger)
	if err != nil {
		return nil, err
	}
	return &WhatsAppClient{api: api}, nil
}

// SendMessage delivers one chat message to the phone number.
func (c *WhatsAppClient) SendMessage(ctx context.Context, phone, message string) error {
	return c.api.post(ctx, struct {
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}{Phone: digitsOnly(phone), Message: message})
}

// SMSClient sends text messages through the SMS gateway API.
type SMSClient struct {
	api *apiClient
}

// NewSMSClient builds an SMS channel client.
func NewSMSClient(url, apiKey string, timeout time.Duration, logger *logging.Logger) (*SMSClient, error) {
	api, err := newAPIClient(url, apiKey, timeout, logger)
	if err != nil {
		return nil, err
	}
	return &SMSClient{api: api}, nil
}

// SendSMS delivers one text message to the phone number.
func (c *SMSClient) SendSMS(ctx context.Context, phone, body string) error {
	return c.api.post(ctx, struct {
		To   string `json:"to"`
		Body string `json:"body"`
	}{To: digitsOnly(phone), Body: body})
}

// EmailAPIClient sends plain notification emails through the email API.
// Appointment emails go through the richer notify senders instead.
type EmailAPIClient struct {
	api *apiClient
}

// NewEmailAPIClient builds an email channel client.
func NewEmailAPIClient(url, apiKey string, timeout time.Duration, logger *logging.Logger) (*EmailAPIClient, error) {
	api, err := newAPIClient(url, apiKey, timeout, logger)
	if err != nil {
		return nil, err
	}
	return &EmailAPIClient{api: api}, nil
}

// SendEmail delivers one notification email.
func (c *EmailAPIClient) SendEmail(ctx context.Context, to, subject, message string) error {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px;">%s</div>`,
		strings.ReplaceAll(message, "\n", "<br>"))
	return c.api.post(ctx, struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Text    string `json:"text"`
		HTML    string `json:"html"`
	}{To: to, Subject: subject, Text: message, HTML: html})
}
