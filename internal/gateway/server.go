package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/CosmoTheDev/eventsync/internal/event"
	"github.com/CosmoTheDev/eventsync/internal/notify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	gogithub "github.com/google/go-github/v68/github"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gateway receives GitHub webhook deliveries over HTTP and dispatches them
// the same way the Actions entry point does. Each delivery is handled on its
// own request goroutine; nothing is shared between deliveries.
type Gateway struct {
	cfg       config.GatewayConfig
	platform  notify.Platform
	startedAt time.Time
}

// New creates a Gateway delivering through platform. Call Start to serve.
func New(cfg config.GatewayConfig, platform notify.Platform) *Gateway {
	return &Gateway{cfg: cfg, platform: platform, startedAt: time.Now()}
}

// Handler returns the HTTP routes.
func (gw *Gateway) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)

	r.Post("/webhook", gw.handleWebhook)
	r.Get("/healthz", gw.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// Start serves until ctx is cancelled.
func (gw *Gateway) Start(ctx context.Context) error {
	addr := gw.cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           gw.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("gateway: listening", "addr", addr, "platform", gw.platform.Name(),
		"signature_check", gw.cfg.WebhookSecret != "")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// GitHub caps webhook payloads at 25 MB.
const maxPayloadBytes = 25 << 20

type webhookResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Title  string `json:"title,omitempty"`
}

func (gw *Gateway) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, status, err := gw.readPayload(r)
	if err != nil {
		slog.Warn("gateway: rejected delivery", "delivery", gogithub.DeliveryID(r), "status", status, "error", err)
		deliveries.WithLabelValues("", "", "rejected").Inc()
		writeError(w, status, "invalid payload: "+err.Error())
		return
	}

	name := gogithub.WebHookType(r)
	if name == "ping" {
		writeJSON(w, http.StatusOK, webhookResponse{Status: "pong"})
		return
	}

	ev, err := event.Parse(name, payload)
	if err != nil {
		if errors.Is(err, event.ErrUnsupportedEvent) {
			deliveries.WithLabelValues(name, "", string(event.StatusSkipped)).Inc()
			writeJSON(w, http.StatusAccepted, webhookResponse{Status: string(event.StatusSkipped), Reason: err.Error()})
			return
		}
		deliveries.WithLabelValues(name, "", "invalid").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := event.Handle(r.Context(), ev, gw.platform, LogReporter{})
	deliveries.WithLabelValues(string(ev.Kind), ev.Action, string(out.Status)).Inc()

	resp := webhookResponse{Status: string(out.Status), Reason: out.Reason}
	if out.Message != nil {
		resp.Title = out.Message.Title
	}
	switch out.Status {
	case event.StatusSent:
		writeJSON(w, http.StatusOK, resp)
	case event.StatusFailed:
		writeJSON(w, http.StatusBadGateway, resp)
	default:
		writeJSON(w, http.StatusAccepted, resp)
	}
}

// readPayload decodes the delivery body and, when a webhook secret is
// configured, checks its signature. Decoding problems map to 400 and
// signature mismatches to 401.
func (gw *Gateway) readPayload(r *http.Request) ([]byte, int, error) {
	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("parsing Content-Type: %w", err)
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("reading body: %w", err)
	}
	payload, err := gogithub.ValidatePayloadFromBody(contentType, bytes.NewReader(raw), "", nil)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	if gw.cfg.WebhookSecret == "" {
		return payload, http.StatusOK, nil
	}
	sig := r.Header.Get(gogithub.SHA256SignatureHeader)
	if sig == "" {
		sig = r.Header.Get(gogithub.SHA1SignatureHeader)
	}
	if err := gogithub.ValidateSignature(sig, raw, []byte(gw.cfg.WebhookSecret)); err != nil {
		return nil, http.StatusUnauthorized, err
	}
	return payload, http.StatusOK, nil
}

func (gw *Gateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"platform": gw.platform.Name(),
		"uptime":   time.Since(gw.startedAt).Round(time.Second).String(),
	})
}

// LogReporter reports warnings and delivery failures through slog. It is the
// reporter used outside GitHub Actions, where there is no step to fail.
type LogReporter struct{}

func (LogReporter) Warning(msg string)   { slog.Warn("gateway: event skipped", "reason", msg) }
func (LogReporter) SetFailed(msg string) { slog.Error("gateway: delivery failed", "error", msg) }
