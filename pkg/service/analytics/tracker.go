package analytics

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/utils/async"
	"github.com/verteidiq/assessor/pkg/utils/logging"
)

const namespace = "assessor"

// Tracker records events as Prometheus metrics and structured log lines
type Tracker struct {
	events     *prometheus.CounterVec
	riskScores *prometheus.HistogramVec
	leadScores prometheus.Histogram
	exposures  *prometheus.CounterVec
}

var _ interfaces.EventTracker = &Tracker{}

// New registers the tracker metrics on reg
func New(reg prometheus.Registerer) *Tracker {
	factory := promauto.With(reg)
	scoreBuckets := prometheus.LinearBuckets(10, 10, 10)

	return &Tracker{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Number of tracked events by name and form",
		}, []string{"event", "form"}),
		riskScores: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_risk_score",
			Help:      "Rounded risk score of completed assessments",
			Buckets:   scoreBuckets,
		}, []string{"industry"}),
		leadScores: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lead_score",
			Help:      "Qualification score of completed leads",
			Buckets:   scoreBuckets,
		}),
		exposures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "experiment_exposures_total",
			Help:      "Number of experiment exposures by experiment and variant",
		}, []string{"experiment", "variant"}),
	}
}

// Track records event in the background
func (t *Tracker) Track(ctx context.Context, event *model.Event) {
	async.Dispatch(ctx, "track "+event.Name, func(ctx context.Context) error {
		t.Record(ctx, event)
		return nil
	})
}

// Record records event synchronously
func (t *Tracker) Record(ctx context.Context, event *model.Event) {
	form := stringProp(event, model.PropForm)
	if form == "" {
		form = "none"
	}
	t.events.WithLabelValues(event.Name, form).Inc()

	switch event.Name {
	case model.EventFormComplete:
		if score, ok := intProp(event, model.PropRiskScore); ok {
			t.riskScores.WithLabelValues(stringProp(event, model.PropIndustry)).Observe(float64(score))
		}
		if score, ok := intProp(event, model.PropLeadScore); ok {
			t.leadScores.Observe(float64(score))
		}
	case model.EventExperimentExposure:
		t.exposures.WithLabelValues(stringProp(event, model.PropExperiment), stringProp(event, model.PropVariant)).Inc()
	}

	logging.From(ctx).Info("event tracked",
		slog.String("event", event.Name),
		slog.Any("properties", event.Properties),
		slog.Time("occurred_at", event.OccurredAt),
	)
}

func stringProp(event *model.Event, key string) string {
	if v, ok := event.Properties[key].(string); ok {
		return v
	}
	if v, ok := event.Properties[key].(interface{ String() string }); ok {
		return v.String()
	}
	return ""
}

func intProp(event *model.Event, key string) (int, bool) {
	switch v := event.Properties[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
