package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/utils/async"
	"github.com/verteidiq/assessor/pkg/utils/logging"
)

// AssessmentUseCase drives questionnaire sessions stored in the repository
type AssessmentUseCase struct {
	uc *UseCases
}

// AssessmentState is the view of a session after an operation. Question is
// nil once the session holds a result.
type AssessmentState struct {
	Assessment *model.Assessment
	Question   *model.Question
	Step       int
	Total      int
	Progress   int
}

// Questions returns the question set shown for industry. Unknown industries
// get the general set.
func (a *AssessmentUseCase) Questions(industry types.Industry) *model.QuestionSet {
	return a.uc.content.QuestionSet(normalizeIndustry(industry))
}

// Start creates a new session at the first question
func (a *AssessmentUseCase) Start(ctx context.Context, industry types.Industry) (*AssessmentState, error) {
	assessment := model.NewAssessment(normalizeIndustry(industry))
	now := a.uc.timestamp()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now

	wizard, err := a.wizard(assessment)
	if err != nil {
		return nil, err
	}

	if err := a.uc.repo.Assessment().Put(ctx, assessment); err != nil {
		return nil, goerr.Wrap(err, "failed to save assessment", goerr.V(AssessmentIDKey, assessment.ID))
	}

	a.uc.tracker.Track(ctx, model.NewEvent(model.EventFormStart, map[string]any{
		model.PropForm:     model.FormAssessment,
		model.PropIndustry: assessment.Industry.String(),
	}))

	return stateOf(wizard), nil
}

// Get loads a session
func (a *AssessmentUseCase) Get(ctx context.Context, id model.AssessmentID) (*AssessmentState, error) {
	wizard, err := a.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return stateOf(wizard), nil
}

// Advance answers the current question. Answering the last question scores
// the session; the first completion is tracked and exported.
func (a *AssessmentUseCase) Advance(ctx context.Context, id model.AssessmentID, answer types.OptionValue) (*AssessmentState, error) {
	var firstCompletion bool
	wizard, err := a.update(ctx, id, func(w *model.Wizard) error {
		wasCompleted := w.Assessment().Completed()
		result, err := w.Advance(answer)
		if err != nil {
			return goerr.Wrap(err, "failed to advance assessment", goerr.V(AssessmentIDKey, id))
		}
		firstCompletion = !wasCompleted && result != nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	if firstCompletion {
		a.completed(ctx, wizard.Assessment())
	}

	return stateOf(wizard), nil
}

// Retreat moves back one question, leaving the results state if needed
func (a *AssessmentUseCase) Retreat(ctx context.Context, id model.AssessmentID) (*AssessmentState, error) {
	wizard, err := a.update(ctx, id, func(w *model.Wizard) error {
		w.Retreat()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stateOf(wizard), nil
}

// Reset discards all answers
func (a *AssessmentUseCase) Reset(ctx context.Context, id model.AssessmentID) (*AssessmentState, error) {
	wizard, err := a.update(ctx, id, func(w *model.Wizard) error {
		w.Reset()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stateOf(wizard), nil
}

// Score computes a result without a session
func (a *AssessmentUseCase) Score(ctx context.Context, industry types.Industry, answers model.AnswerMap) (*model.AssessmentResult, error) {
	set := a.Questions(industry)
	if set.Len() == 0 {
		return nil, goerr.Wrap(model.ErrEmptyQuestionSet, "cannot score", goerr.V(model.IndustryKey, industry))
	}

	result := model.Score(set, answers, a.uc.content.Content())
	logging.From(ctx).Debug("assessment scored",
		slog.String("industry", set.Industry.String()),
		slog.Int("answers", len(answers)),
		slog.Int("risk_score", result.Score),
	)
	return result, nil
}

// update runs fn on the stored session inside one repository update and
// stamps the timestamps. CompletedAt is set on the first transition to the
// results state and cleared when the session leaves it.
func (a *AssessmentUseCase) update(ctx context.Context, id model.AssessmentID, fn func(w *model.Wizard) error) (*model.Wizard, error) {
	var wizard *model.Wizard
	_, err := a.uc.repo.Assessment().Update(ctx, id, func(assessment *model.Assessment) error {
		w, err := a.wizard(assessment)
		if err != nil {
			return err
		}
		if err := fn(w); err != nil {
			return err
		}

		now := a.uc.timestamp()
		assessment.UpdatedAt = now
		switch {
		case !assessment.Completed():
			assessment.CompletedAt = nil
		case assessment.CompletedAt == nil:
			assessment.CompletedAt = &now
		}

		wizard = w
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrAssessmentNotFound, "assessment not found", goerr.V(AssessmentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to update assessment", goerr.V(AssessmentIDKey, id))
	}
	return wizard, nil
}

func (a *AssessmentUseCase) load(ctx context.Context, id model.AssessmentID) (*model.Wizard, error) {
	assessment, err := a.uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrAssessmentNotFound, "assessment not found", goerr.V(AssessmentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
	}
	return a.wizard(assessment)
}

func (a *AssessmentUseCase) wizard(assessment *model.Assessment) (*model.Wizard, error) {
	set := a.uc.content.QuestionSet(assessment.Industry)
	if set.Len() == 0 {
		return nil, goerr.Wrap(model.ErrEmptyQuestionSet, "no questions for industry",
			goerr.V(model.IndustryKey, assessment.Industry), goerr.V(AssessmentIDKey, assessment.ID))
	}
	return model.NewWizard(set, a.uc.content.Content(), assessment), nil
}

func (a *AssessmentUseCase) completed(ctx context.Context, assessment *model.Assessment) {
	result := assessment.Result
	a.uc.tracker.Track(ctx, model.NewEvent(model.EventFormComplete, map[string]any{
		model.PropForm:       model.FormAssessment,
		model.PropIndustry:   assessment.Industry.String(),
		model.PropRiskTier:   result.Tier.String(),
		model.PropRiskScore:  result.Score,
		model.PropBreachCost: result.EstimatedBreachCost,
	}))

	logging.From(ctx).Info("assessment completed",
		slog.String("assessment_id", string(assessment.ID)),
		slog.String("industry", assessment.Industry.String()),
		slog.String("risk_tier", result.Tier.String()),
		slog.Int("risk_score", result.Score),
	)

	if a.uc.reports == nil {
		return
	}

	snapshot := *assessment
	snapshot.Answers = assessment.Answers.Clone()
	async.Dispatch(ctx, "export assessment report", func(ctx context.Context) error {
		location, err := a.uc.reports.PutReport(ctx, &snapshot)
		if err != nil {
			return goerr.Wrap(err, "failed to export report", goerr.V(AssessmentIDKey, snapshot.ID))
		}
		logging.From(ctx).Info("assessment report exported",
			slog.String("assessment_id", string(snapshot.ID)),
			slog.String("location", location),
		)
		return nil
	})
}

func stateOf(w *model.Wizard) *AssessmentState {
	assessment := w.Assessment()
	state := &AssessmentState{
		Assessment: assessment,
		Step:       assessment.Step,
		Total:      w.Total(),
		Progress:   w.Progress(),
	}
	if !w.Completed() {
		state.Question = w.Current()
	}
	return state
}

func normalizeIndustry(industry types.Industry) types.Industry {
	industry = industry.Normalize()
	if !industry.IsValid() {
		return types.IndustryGeneral
	}
	return industry
}
