package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

func newTestLead(createdAt time.Time) *model.Lead {
	return &model.Lead{
		ID:       model.NewLeadID(),
		Step:     types.LeadStepContact,
		Industry: types.IndustryHealthcare,
		Domain:   "example.com",
		DomainProfile: &model.DomainProfile{
			MXHosts: []string{"mx1.example.com."},
			SPF:     "v=spf1 -all",
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func runLeadRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		lead := newTestLead(time.Now().UTC().Truncate(time.Millisecond))
		gt.NoError(t, repo.Lead().Put(ctx, lead)).Required()

		got, err := repo.Lead().Get(ctx, lead.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Step).Equal(types.LeadStepContact)
		gt.Value(t, got.Domain).Equal("example.com")
		gt.Value(t, got.DomainProfile).Equal(lead.DomainProfile)
		gt.Value(t, got.CompletedAt).Nil()
	})

	t.Run("Put overwrites with completed lead", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		lead := newTestLead(time.Now().UTC().Truncate(time.Millisecond))
		gt.NoError(t, repo.Lead().Put(ctx, lead)).Required()

		completedAt := lead.CreatedAt.Add(time.Minute)
		lead.Step = types.LeadStepCompleted
		lead.Email = "jane@example.com"
		lead.CompanySize = types.CompanySize201To1000
		lead.Role = types.RoleCISO
		lead.Challenges = []types.Challenge{types.ChallengeCompliance, types.ChallengeZeroDay}
		lead.Score = 100
		lead.CompletedAt = &completedAt
		gt.NoError(t, repo.Lead().Put(ctx, lead)).Required()

		got, err := repo.Lead().Get(ctx, lead.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Step).Equal(types.LeadStepCompleted)
		gt.Value(t, got.Email).Equal("jane@example.com")
		gt.Value(t, got.Challenges).Equal(lead.Challenges)
		gt.Value(t, got.Score).Equal(100)
		gt.Bool(t, got.CompletedAt.Equal(completedAt)).True()
	})

	t.Run("Get missing lead", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Lead().Get(context.Background(), model.NewLeadID())
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("Update applies the change", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		lead := newTestLead(time.Now().UTC().Truncate(time.Millisecond))
		gt.NoError(t, repo.Lead().Put(ctx, lead)).Required()

		updated, err := repo.Lead().Update(ctx, lead.ID, func(l *model.Lead) error {
			l.Email = "jane@example.com"
			l.Step = types.LeadStepQualification
			return nil
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Step).Equal(types.LeadStepQualification)

		got, err := repo.Lead().Get(ctx, lead.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Email).Equal("jane@example.com")
		gt.Value(t, got.Step).Equal(types.LeadStepQualification)
		gt.Value(t, got.DomainProfile).Equal(lead.DomainProfile)
	})

	t.Run("Update keeps the record when fn fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		lead := newTestLead(time.Now().UTC().Truncate(time.Millisecond))
		gt.NoError(t, repo.Lead().Put(ctx, lead)).Required()

		errStop := errors.New("stop")
		_, err := repo.Lead().Update(ctx, lead.ID, func(l *model.Lead) error {
			l.Step = types.LeadStepCompleted
			return errStop
		})
		gt.Error(t, err).Is(errStop)

		got, err := repo.Lead().Get(ctx, lead.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Step).Equal(types.LeadStepContact)
	})

	t.Run("Update serializes concurrent step transitions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		lead := newTestLead(time.Now().UTC().Truncate(time.Millisecond))
		gt.NoError(t, repo.Lead().Put(ctx, lead)).Required()

		errMoved := errors.New("moved")
		const n = 8
		var wg sync.WaitGroup
		var mu sync.Mutex
		succeeded := 0
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Lead().Update(ctx, lead.ID, func(l *model.Lead) error {
					if l.Step != types.LeadStepContact {
						return errMoved
					}
					time.Sleep(5 * time.Millisecond)
					l.Step = types.LeadStepQualification
					return nil
				})
				if err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		gt.Value(t, succeeded).Equal(1)
	})

	t.Run("Update missing lead", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Lead().Update(context.Background(), model.NewLeadID(), func(*model.Lead) error {
			t.Error("fn must not be called")
			return nil
		})
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("List returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		older := newTestLead(base)
		newer := newTestLead(base.Add(time.Hour))
		newest := newTestLead(base.Add(2 * time.Hour))
		for _, l := range []*model.Lead{newer, older, newest} {
			gt.NoError(t, repo.Lead().Put(ctx, l)).Required()
		}

		leads, err := repo.Lead().List(ctx, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, leads).Length(2)
		gt.Value(t, leads[0].ID).Equal(newest.ID)
		gt.Value(t, leads[1].ID).Equal(newer.ID)
	})

	t.Run("List filters by step", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		open := newTestLead(base.Add(2 * time.Hour))
		done1 := newTestLead(base)
		done1.Step = types.LeadStepCompleted
		done2 := newTestLead(base.Add(time.Hour))
		done2.Step = types.LeadStepCompleted
		for _, l := range []*model.Lead{open, done1, done2} {
			gt.NoError(t, repo.Lead().Put(ctx, l)).Required()
		}

		leads, err := repo.Lead().List(ctx, 10, interfaces.WithLeadStep(types.LeadStepCompleted))
		gt.NoError(t, err).Required()
		gt.Array(t, leads).Length(2).Required()
		gt.Value(t, leads[0].ID).Equal(done2.ID)
		gt.Value(t, leads[1].ID).Equal(done1.ID)
	})
}

func TestMemoryLeadRepository(t *testing.T) {
	runLeadRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreLeadRepository(t *testing.T) {
	runLeadRepositoryTest(t, newFirestoreRepository)
}
