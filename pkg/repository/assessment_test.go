package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/repository/firestore"
	"github.com/verteidiq/assessor/pkg/repository/memory"
)

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

func runAssessmentRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get in progress assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(types.IndustryFinance)
		a.Step = 2
		a.Answers["company_size"] = "medium"
		a.Answers["budget"] = "none"
		a.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
		a.UpdatedAt = a.CreatedAt

		gt.NoError(t, repo.Assessment().Put(ctx, a)).Required()

		got, err := repo.Assessment().Get(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(a.ID)
		gt.Value(t, got.Industry).Equal(types.IndustryFinance)
		gt.Value(t, got.Step).Equal(2)
		gt.Value(t, got.Answers).Equal(a.Answers)
		gt.Value(t, got.Result).Nil()
		gt.Bool(t, got.CreatedAt.Equal(a.CreatedAt)).True()
		gt.Value(t, got.CompletedAt).Nil()
	})

	t.Run("Put and Get completed assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		completedAt := time.Now().UTC().Truncate(time.Millisecond)
		a := model.NewAssessment(types.IndustryGeneral)
		a.Answers["incidents"] = "major"
		a.CompletedAt = &completedAt
		a.Result = &model.AssessmentResult{
			Tier:                types.RiskTierCritical,
			Percent:             100,
			Score:               100,
			EstimatedBreachCost: "$7.8M",
			PotentialSavings:    "$3.2M+",
			Categories: map[types.Category]model.CategoryResult{
				types.CategoryGeneral: {
					Percent:         100,
					Score:           100,
					Rating:          types.CategoryRatingCritical,
					Recommendations: []string{"Critical gaps in general security require urgent remediation."},
				},
			},
			Recommendations: []string{"a", "b", "c"},
			NextSteps:       []string{"x", "y", "z"},
		}

		gt.NoError(t, repo.Assessment().Put(ctx, a)).Required()

		got, err := repo.Assessment().Get(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Result).Equal(a.Result)
		gt.Value(t, got.CompletedAt).NotNil()
		gt.Bool(t, got.CompletedAt.Equal(completedAt)).True()
	})

	t.Run("returned assessment is a copy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(types.IndustryGeneral)
		a.Answers["incidents"] = "none"
		gt.NoError(t, repo.Assessment().Put(ctx, a)).Required()

		a.Answers["incidents"] = "major"
		got, err := repo.Assessment().Get(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Answers["incidents"]).Equal(types.OptionValue("none"))

		got.Answers["tools"] = "basic"
		again, err := repo.Assessment().Get(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, len(again.Answers)).Equal(1)
	})

	t.Run("Get missing assessment", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Assessment().Get(context.Background(), model.NewAssessmentID())
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("Update applies the change", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(types.IndustryGeneral)
		gt.NoError(t, repo.Assessment().Put(ctx, a)).Required()

		updated, err := repo.Assessment().Update(ctx, a.ID, func(a *model.Assessment) error {
			a.Answers["incidents"] = "minor"
			a.Step = 1
			return nil
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Step).Equal(1)

		got, err := repo.Assessment().Get(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Step).Equal(1)
		gt.Value(t, got.Answers["incidents"]).Equal(types.OptionValue("minor"))
	})

	t.Run("Update keeps the record when fn fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(types.IndustryGeneral)
		gt.NoError(t, repo.Assessment().Put(ctx, a)).Required()

		errStop := errors.New("stop")
		_, err := repo.Assessment().Update(ctx, a.ID, func(a *model.Assessment) error {
			a.Step = 3
			return errStop
		})
		gt.Error(t, err).Is(errStop)

		got, err := repo.Assessment().Get(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Step).Equal(0)
	})

	t.Run("Update missing assessment", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Assessment().Update(context.Background(), model.NewAssessmentID(), func(*model.Assessment) error {
			t.Error("fn must not be called")
			return nil
		})
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := model.NewAssessment(types.IndustryGeneral)
		gt.NoError(t, repo.Assessment().Put(ctx, a)).Required()
		gt.NoError(t, repo.Assessment().Delete(ctx, a.ID)).Required()

		_, err := repo.Assessment().Get(ctx, a.ID)
		gt.Bool(t, isNotFound(err)).True()

		// deleting twice is fine
		gt.NoError(t, repo.Assessment().Delete(ctx, a.ID))
	})
}

func TestMemoryAssessmentRepository(t *testing.T) {
	runAssessmentRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreAssessmentRepository(t *testing.T) {
	runAssessmentRepositoryTest(t, newFirestoreRepository)
}
