package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kolahope/kolahope/internal/donation/domain"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.paystack.co"

// Paystack settles checkout sessions hosted on its own pages; this
// client only initializes transactions and reads back their status.
type Config struct {
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.Named("paystack"),
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type transactionData struct {
	Reference string         `json:"reference"`
	Status    string         `json:"status"`
	Amount    int64          `json:"amount"`
	Currency  string         `json:"currency"`
	PaidAt    *time.Time     `json:"paid_at"`
	Customer  customerData   `json:"customer"`
	Metadata  map[string]any `json:"metadata"`
}

type customerData struct {
	Email string `json:"email"`
}

func (c *Client) InitializeTransaction(ctx context.Context, req domain.GatewayInitRequest) (*domain.GatewaySession, error) {
	if strings.TrimSpace(c.cfg.SecretKey) == "" {
		return nil, domain.ErrNotConfigured
	}

	body := map[string]any{
		"amount":   req.AmountMinor,
		"email":    req.Email,
		"currency": req.Currency,
		"metadata": req.Metadata,
	}

	var data initializeData
	if err := c.call(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return nil, err
	}
	if data.AuthorizationURL == "" || data.Reference == "" {
		return nil, fmt.Errorf("%w: incomplete initialize response", domain.ErrGateway)
	}

	return &domain.GatewaySession{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*domain.GatewayTransaction, error) {
	if strings.TrimSpace(c.cfg.SecretKey) == "" {
		return nil, domain.ErrNotConfigured
	}

	var data transactionData
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := c.call(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}

	return toDomain(data), nil
}

func (c *Client) ListTransactions(ctx context.Context, since time.Time, perPage int) ([]domain.GatewayTransaction, error) {
	if strings.TrimSpace(c.cfg.SecretKey) == "" {
		return nil, domain.ErrNotConfigured
	}
	if perPage <= 0 {
		perPage = 50
	}

	query := url.Values{}
	query.Set("perPage", strconv.Itoa(perPage))
	if !since.IsZero() {
		query.Set("from", since.UTC().Format(time.RFC3339))
	}

	var data []transactionData
	if err := c.call(ctx, http.MethodGet, "/transaction?"+query.Encode(), nil, &data); err != nil {
		return nil, err
	}

	out := make([]domain.GatewayTransaction, 0, len(data))
	for _, item := range data {
		out = append(out, *toDomain(item))
	}
	return out, nil
}

func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return domain.ErrGatewayTimeout
		}
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrGateway, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: malformed response", domain.ErrGateway)
	}
	if !env.Status {
		message := strings.TrimSpace(env.Message)
		if message == "" {
			message = "request rejected"
		}
		c.log.Warn("gateway rejected request",
			zap.String("path", path),
			zap.Int("http_status", resp.StatusCode),
			zap.String("message", message),
		)
		return fmt.Errorf("%w: %s", domain.ErrGateway, message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: malformed response data", domain.ErrGateway)
		}
	}
	return nil
}

func toDomain(data transactionData) *domain.GatewayTransaction {
	return &domain.GatewayTransaction{
		Reference:     data.Reference,
		Status:        strings.ToLower(strings.TrimSpace(data.Status)),
		AmountMinor:   data.Amount,
		Currency:      data.Currency,
		PaidAt:        data.PaidAt,
		CustomerEmail: data.Customer.Email,
		Metadata:      data.Metadata,
	}
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
