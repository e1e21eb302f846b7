package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[model.AssessmentID]*model.Assessment
}

var _ interfaces.AssessmentRepository = &assessmentRepository{}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[model.AssessmentID]*model.Assessment),
	}
}

func copyAssessment(a *model.Assessment) *model.Assessment {
	copied := *a
	copied.Answers = a.Answers.Clone()
	if a.Result != nil {
		copied.Result = copyResult(a.Result)
	}
	if a.CompletedAt != nil {
		completedAt := *a.CompletedAt
		copied.CompletedAt = &completedAt
	}
	return &copied
}

func copyResult(r *model.AssessmentResult) *model.AssessmentResult {
	copied := *r
	copied.Recommendations = append([]string(nil), r.Recommendations...)
	copied.NextSteps = append([]string(nil), r.NextSteps...)
	copied.Categories = make(map[types.Category]model.CategoryResult, len(r.Categories))
	for k, v := range r.Categories {
		v.Recommendations = append([]string(nil), v.Recommendations...)
		copied.Categories[k] = v
	}
	return &copied
}

func (r *assessmentRepository) Put(ctx context.Context, assessment *model.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.assessments[assessment.ID] = copyAssessment(assessment)
	return nil
}

func (r *assessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, ok := r.assessments[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}
	return copyAssessment(assessment), nil
}

// Update holds the write lock while fn runs, so concurrent updates of one
// session are applied one after another
func (r *assessmentRepository) Update(ctx context.Context, id model.AssessmentID, fn func(*model.Assessment) error) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.assessments[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	updated := copyAssessment(current)
	if err := fn(updated); err != nil {
		return nil, err
	}
	r.assessments[id] = copyAssessment(updated)
	return updated, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id model.AssessmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.assessments, id)
	return nil
}
