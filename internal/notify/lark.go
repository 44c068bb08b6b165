package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/CosmoTheDev/eventsync/internal/config"
)

const (
	defaultLarkTimeout = 10 * time.Second
	maxLarkResponse    = 64 << 10
)

// ErrNoWebhookURL is returned by Send when the Lark platform has no endpoint.
var ErrNoWebhookURL = errors.New("lark webhook URL is not configured")

// LarkChannel posts interactive cards to a Lark (Feishu) custom-bot webhook.
type LarkChannel struct {
	cfg      config.LarkConfig
	client   *http.Client
	reporter FailureReporter
	now      func() time.Time
}

// NewLark creates a LarkChannel from cfg. reporter may be nil.
func NewLark(cfg config.LarkConfig, reporter FailureReporter) *LarkChannel {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultLarkTimeout
	}
	if reporter == nil {
		reporter = discardReporter{}
	}
	return &LarkChannel{
		cfg:      cfg,
		client:   &http.Client{Timeout: timeout},
		reporter: reporter,
		now:      time.Now,
	}
}

func (l *LarkChannel) Name() string        { return "lark" }
func (l *LarkChannel) IsConfigured() bool { return l.cfg.WebhookURL != "" }

// Send formats msg as a card and posts it once. Any failure is reported to
// the FailureReporter exactly once and returned.
func (l *LarkChannel) Send(ctx context.Context, msg Message) error {
	if err := l.post(ctx, msg); err != nil {
		l.reporter.SetFailed(fmt.Sprintf("Failed to send message to Lark: %v", err))
		return err
	}
	return nil
}

// larkResponse covers both the current {code,msg} and the legacy
// {StatusCode,StatusMessage} reply shapes.
type larkResponse struct {
	Code          int    `json:"code"`
	Msg           string `json:"msg"`
	StatusCode    int    `json:"StatusCode"`
	StatusMessage string `json:"StatusMessage"`
}

func (l *LarkChannel) post(ctx context.Context, msg Message) error {
	if !l.IsConfigured() {
		return ErrNoWebhookURL
	}
	payload := BuildCard(msg, l.cfg.Mentions)
	if l.cfg.Secret != "" {
		ts := strconv.FormatInt(l.now().Unix(), 10)
		payload.Timestamp = ts
		payload.Sign = larkSign(ts, l.cfg.Secret)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding card: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.cfg.WebhookURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := l.client.Do(req) // #nosec G107 -- WebhookURL is a user-configured Lark bot webhook
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLarkResponse))
	if err != nil {
		return fmt.Errorf("reading lark response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("lark webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	var lr larkResponse
	if json.Unmarshal(body, &lr) == nil {
		if lr.Code != 0 {
			return fmt.Errorf("lark rejected message: code %d: %s", lr.Code, lr.Msg)
		}
		if lr.StatusCode != 0 {
			return fmt.Errorf("lark rejected message: status %d: %s", lr.StatusCode, lr.StatusMessage)
		}
	}
	slog.Info("notify: lark response", "body", string(body))
	return nil
}

// larkSign computes the custom-bot signature: the HMAC-SHA256 of an empty
// message keyed with "timestamp\nsecret", base64 encoded.
func larkSign(timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(timestamp+"\n"+secret))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
