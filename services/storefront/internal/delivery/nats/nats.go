// Package nats answers analytics report requests over NATS request-reply so
// internal consumers can read the same reports as the HTTP API.
package nats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"storefront/services/storefront/internal/application/query"
)

const (
	SubjectDashboard  = "analytics.dashboard"
	SubjectCategories = "analytics.categories"
	SubjectCohorts    = "analytics.cohorts"
	SubjectHealth     = "storefront.health"

	queueGroup     = "storefront"
	handlerTimeout = 5 * time.Second
)

// ReportService is the slice of the analytics service exposed over NATS.
type ReportService interface {
	DashboardKPIs(ctx context.Context) (*query.DashboardResult, error)
	CategoryPerformance(ctx context.Context) (*query.CategoryResult, error)
	CustomerCohorts(ctx context.Context) (*query.CohortResult, error)
}

type reply struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type Handler struct {
	reports ReportService
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(reports ReportService, logger *zap.Logger) *Handler {
	return &Handler{reports: reports, logger: logger, now: time.Now}
}

// Subscribe registers queue subscriptions for every report subject plus a
// plain health subscription, so each instance answers health probes.
func (h *Handler) Subscribe(nc *nats.Conn) ([]*nats.Subscription, error) {
	var subs []*nats.Subscription
	for _, subject := range []string{SubjectDashboard, SubjectCategories, SubjectCohorts} {
		sub, err := nc.QueueSubscribe(subject, queueGroup, h.handle)
		if err != nil {
			unsubscribeAll(subs)
			return nil, err
		}
		subs = append(subs, sub)
	}

	sub, err := nc.Subscribe(SubjectHealth, h.handle)
	if err != nil {
		unsubscribeAll(subs)
		return nil, err
	}
	return append(subs, sub), nil
}

func unsubscribeAll(subs []*nats.Subscription) {
	for _, s := range subs {
		_ = s.Unsubscribe()
	}
}

func (h *Handler) handle(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	if err := msg.Respond(h.respond(ctx, msg.Subject)); err != nil {
		h.logger.Warn("nats respond failed", zap.String("subject", msg.Subject), zap.Error(err))
	}
}

// respond builds the JSON reply for a subject. Failures are reported in the
// error field; details stay in the log.
func (h *Handler) respond(ctx context.Context, subject string) []byte {
	var (
		data any
		err  error
	)
	switch subject {
	case SubjectDashboard:
		data, err = h.reports.DashboardKPIs(ctx)
	case SubjectCategories:
		data, err = h.reports.CategoryPerformance(ctx)
	case SubjectCohorts:
		data, err = h.reports.CustomerCohorts(ctx)
	case SubjectHealth:
		data = map[string]any{"status": "healthy", "timestamp": h.now().UTC()}
	default:
		return encode(reply{Error: "unknown subject"})
	}

	if err != nil {
		h.logger.Error("nats report failed", zap.String("subject", subject), zap.Error(err))
		return encode(reply{Error: "report failed"})
	}
	return encode(reply{Data: data})
}

func encode(r reply) []byte {
	b, err := json.Marshal(r)
	if err != nil {
		return []byte(`{"error":"encode failed"}`)
	}
	return b
}
