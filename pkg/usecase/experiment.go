package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/model"
)

const maxIdentifierLength = 128

// ExperimentUseCase assigns sessions to A/B test variants
type ExperimentUseCase struct {
	uc *UseCases
}

// Assignment is the variant a session sees in an experiment
type Assignment struct {
	SessionID    string
	ExperimentID string
	Variant      string
}

// Assign buckets the session deterministically and records the exposure.
// Empty variants fall back to the default three.
func (e *ExperimentUseCase) Assign(ctx context.Context, sessionID, experimentID string, variants []string) (*Assignment, error) {
	if sessionID == "" || len(sessionID) > maxIdentifierLength {
		return nil, goerr.Wrap(ErrInvalidInput, "session ID is invalid", goerr.V(FieldKey, "session"))
	}
	if experimentID == "" || len(experimentID) > maxIdentifierLength {
		return nil, goerr.Wrap(ErrInvalidInput, "experiment ID is invalid",
			goerr.V(FieldKey, "experiment"), goerr.V("experiment", experimentID))
	}
	for _, v := range variants {
		if v == "" {
			return nil, goerr.Wrap(ErrInvalidInput, "variant names must not be empty", goerr.V("experiment", experimentID))
		}
	}

	variant := model.AssignVariant(sessionID, experimentID, variants)

	e.uc.tracker.Track(ctx, model.NewEvent(model.EventExperimentExposure, map[string]any{
		model.PropExperiment: experimentID,
		model.PropVariant:    variant,
	}))

	return &Assignment{
		SessionID:    sessionID,
		ExperimentID: experimentID,
		Variant:      variant,
	}, nil
}
