package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
)

type leadRepository struct {
	mu    sync.RWMutex
	leads map[model.LeadID]*model.Lead
}

var _ interfaces.LeadRepository = &leadRepository{}

func newLeadRepository() *leadRepository {
	return &leadRepository{
		leads: make(map[model.LeadID]*model.Lead),
	}
}

func copyLead(l *model.Lead) *model.Lead {
	copied := *l
	copied.Challenges = slices.Clone(l.Challenges)
	if l.DomainProfile != nil {
		profile := *l.DomainProfile
		profile.MXHosts = slices.Clone(l.DomainProfile.MXHosts)
		copied.DomainProfile = &profile
	}
	if l.CompletedAt != nil {
		completedAt := *l.CompletedAt
		copied.CompletedAt = &completedAt
	}
	return &copied
}

func (r *leadRepository) Put(ctx context.Context, lead *model.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.leads[lead.ID] = copyLead(lead)
	return nil
}

func (r *leadRepository) Get(ctx context.Context, id model.LeadID) (*model.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", id))
	}
	return copyLead(lead), nil
}

// Update holds the write lock while fn runs, so concurrent updates of one
// lead are applied one after another
func (r *leadRepository) Update(ctx context.Context, id model.LeadID, fn func(*model.Lead) error) (*model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.leads[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", id))
	}

	updated := copyLead(current)
	if err := fn(updated); err != nil {
		return nil, err
	}
	r.leads[id] = copyLead(updated)
	return updated, nil
}

func (r *leadRepository) List(ctx context.Context, limit int, opts ...interfaces.ListLeadOption) ([]*model.Lead, error) {
	cfg := interfaces.BuildListLeadConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	leads := make([]*model.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		if step := cfg.Step(); step != nil && lead.Step != *step {
			continue
		}
		leads = append(leads, copyLead(lead))
	}

	slices.SortFunc(leads, func(a, b *model.Lead) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if limit > 0 && len(leads) > limit {
		leads = leads[:limit]
	}
	return leads, nil
}
