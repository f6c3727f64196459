package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendConfig configures the Resend HTTP provider.
type ResendConfig struct {
	APIKey   string
	From     string
	FromName string
	Endpoint string
	Timeout  time.Duration
}

type ResendProvider struct {
	cfg  ResendConfig
	http *http.Client
}

func NewResend(cfg ResendConfig) *ResendProvider {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = resendEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &ResendProvider{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *ResendProvider) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	if len(to) == 0 {
		return nil
	}

	from := p.cfg.From
	if name := strings.TrimSpace(p.cfg.FromName); name != "" {
		from = fmt.Sprintf("%s <%s>", name, p.cfg.From)
	}

	payload, err := json.Marshal(map[string]any{
		"from":    from,
		"to":      to,
		"subject": subject,
		"html":    htmlBody,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
