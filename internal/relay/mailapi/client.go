// Package mailapi sends lead messages through a transactional email API
// that accepts EmailJS-style JSON payloads.
package mailapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kakascoaching/site/internal/platform/httpclient"
	"github.com/kakascoaching/site/internal/relay"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/kakascoaching/site/internal/relay/mailapi"

// DefaultEndpoint is the public EmailJS send endpoint.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Config configures the mail API client.
type Config struct {
	Endpoint   string
	ServiceID  string
	PublicKey  string
	PrivateKey string
	// Templates maps logical template names ("enrollment", "intake") to
	// vendor template ids. Unmapped names are sent as-is.
	Templates   map[string]string
	Timeout     time.Duration
	MaxAttempts int
	HTTPClient  *http.Client
}

// Client implements relay.Relay over HTTP.
type Client struct {
	endpoint   string
	serviceID  string
	publicKey  string
	privateKey string
	templates  map[string]string
	retry      httpclient.RetryConfig
	http       *http.Client
}

var _ relay.Relay = (*Client)(nil)

type payload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// New validates cfg and returns a client.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if strings.TrimSpace(cfg.ServiceID) == "" {
		return nil, errors.New("mailapi: service id is required")
	}
	if strings.TrimSpace(cfg.PublicKey) == "" {
		return nil, errors.New("mailapi: public key is required")
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	retry := httpclient.SingleAttempt()
	if cfg.MaxAttempts > 1 {
		retry = httpclient.DefaultRetryConfig()
		retry.MaxAttempts = cfg.MaxAttempts
	}
	templates := make(map[string]string, len(cfg.Templates))
	for name, id := range cfg.Templates {
		templates[strings.TrimSpace(name)] = strings.TrimSpace(id)
	}
	return &Client{
		endpoint:   endpoint,
		serviceID:  strings.TrimSpace(cfg.ServiceID),
		publicKey:  strings.TrimSpace(cfg.PublicKey),
		privateKey: strings.TrimSpace(cfg.PrivateKey),
		templates:  templates,
		retry:      retry,
		http:       client,
	}, nil
}

// TemplateID resolves the vendor template id for a logical name.
func (c *Client) TemplateID(name string) string {
	if id, ok := c.templates[name]; ok && id != "" {
		return id
	}
	return name
}

// Send posts msg to the mail API.
func (c *Client) Send(ctx context.Context, msg relay.Message) (err error) {
	if err := msg.Validate(); err != nil {
		return err
	}
	templateID := c.TemplateID(msg.Template)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "mailapi.Send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("relay.template", msg.Template),
			attribute.String("relay.template_id", templateID),
			attribute.Int("relay.fields", len(msg.Fields)),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	params := make(map[string]string, len(msg.Fields))
	for key, value := range msg.Fields {
		params[key] = value
	}
	body, err := json.Marshal(payload{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		AccessToken:    c.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("mailapi: encode payload: %w", err)
	}

	resp, _, err := httpclient.DoWithRetry(ctx, c.http, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, c.retry)
	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}
	if err != nil {
		return fmt.Errorf("mailapi: send %s: %w", msg.Template, err)
	}
	return nil
}
