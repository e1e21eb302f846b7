package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/service/analytics"
)

func TestTracker_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	tracker := analytics.New(reg)
	ctx := context.Background()

	tracker.Record(ctx, model.NewEvent(model.EventFormStart, map[string]any{
		model.PropForm:     model.FormAssessment,
		model.PropIndustry: types.IndustryFinance,
	}))
	tracker.Record(ctx, model.NewEvent(model.EventFormComplete, map[string]any{
		model.PropForm:      model.FormAssessment,
		model.PropIndustry:  types.IndustryFinance,
		model.PropRiskScore: 64,
	}))
	tracker.Record(ctx, model.NewEvent(model.EventFormComplete, map[string]any{
		model.PropForm:      model.FormLeadCapture,
		model.PropLeadScore: 90,
	}))
	tracker.Record(ctx, model.NewEvent(model.EventExperimentExposure, map[string]any{
		model.PropExperiment: "hero_cta",
		model.PropVariant:    "variant_a",
	}))

	count, err := testutil.GatherAndCount(reg, "assessor_events_total")
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(4)

	count, err = testutil.GatherAndCount(reg, "assessor_assessment_risk_score")
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(1)

	count, err = testutil.GatherAndCount(reg, "assessor_lead_score")
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(1)

	count, err = testutil.GatherAndCount(reg, "assessor_experiment_exposures_total")
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(1)
}

func TestTracker_TrackIsAsync(t *testing.T) {
	reg := prometheus.NewRegistry()
	tracker := analytics.New(reg)

	tracker.Track(context.Background(), model.NewEvent(model.EventFormStart, nil))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		count, err := testutil.GatherAndCount(reg, "assessor_events_total")
		gt.NoError(t, err).Required()
		if count == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("event was not recorded")
}
