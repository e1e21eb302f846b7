package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/usecase"
)

func TestExperimentUseCase_Assign(t *testing.T) {
	uc, tracker := newTestUseCases(t)
	ctx := context.Background()

	assignment, err := uc.Experiment.Assign(ctx, "a", "b", nil)
	gt.NoError(t, err).Required()
	gt.Value(t, assignment.Variant).Equal("control")

	assignment, err = uc.Experiment.Assign(ctx, "a", "c", nil)
	gt.NoError(t, err).Required()
	gt.Value(t, assignment.Variant).Equal("variant_a")

	assignment, err = uc.Experiment.Assign(ctx, "a", "b", []string{"x", "y"})
	gt.NoError(t, err).Required()
	gt.Value(t, assignment.Variant).Equal("y")

	exposures := tracker.named(model.EventExperimentExposure)
	gt.Array(t, exposures).Length(3).Required()
	gt.Value(t, exposures[0].Properties[model.PropExperiment]).Equal(any("b"))
	gt.Value(t, exposures[0].Properties[model.PropVariant]).Equal(any("control"))
}

func TestExperimentUseCase_AssignInvalid(t *testing.T) {
	uc, tracker := newTestUseCases(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		session    string
		experiment string
		variants   []string
	}{
		{"empty session", "", "hero_cta", nil},
		{"empty experiment", "session-1", "", nil},
		{"long session", strings.Repeat("s", 129), "hero_cta", nil},
		{"empty variant", "session-1", "hero_cta", []string{"a", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Experiment.Assign(ctx, tt.session, tt.experiment, tt.variants)
			gt.Error(t, err).Is(usecase.ErrInvalidInput)
		})
	}

	gt.Array(t, tracker.named(model.EventExperimentExposure)).Length(0)
}
