package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const leadsCollection = "leads"

type leadRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.LeadRepository = &leadRepository{}

func newLeadRepository(client *firestore.Client) *leadRepository {
	return &leadRepository{
		client: client,
	}
}

// leadDoc is the Firestore persistence model
type leadDoc struct {
	ID            string            `firestore:"id"`
	Step          string            `firestore:"step"`
	Industry      string            `firestore:"industry"`
	Domain        string            `firestore:"domain"`
	DomainProfile *domainProfileDoc `firestore:"domain_profile,omitempty"`
	Email         string            `firestore:"email"`
	Phone         string            `firestore:"phone"`
	CompanySize   string            `firestore:"company_size"`
	Role          string            `firestore:"role"`
	Challenges    []string          `firestore:"challenges"`
	Score         int               `firestore:"score"`
	CreatedAt     time.Time         `firestore:"created_at"`
	UpdatedAt     time.Time         `firestore:"updated_at"`
	CompletedAt   *time.Time        `firestore:"completed_at,omitempty"`
}

type domainProfileDoc struct {
	MXHosts []string `firestore:"mx_hosts"`
	SPF     string   `firestore:"spf"`
	DMARC   string   `firestore:"dmarc"`
}

func (r *leadRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, leadsCollection))
}

func (r *leadRepository) toDoc(lead *model.Lead) *leadDoc {
	doc := &leadDoc{
		ID:          string(lead.ID),
		Step:        lead.Step.String(),
		Industry:    lead.Industry.String(),
		Domain:      lead.Domain,
		Email:       lead.Email,
		Phone:       lead.Phone,
		CompanySize: lead.CompanySize.String(),
		Role:        lead.Role.String(),
		Challenges:  make([]string, 0, len(lead.Challenges)),
		Score:       lead.Score,
		CreatedAt:   lead.CreatedAt,
		UpdatedAt:   lead.UpdatedAt,
		CompletedAt: lead.CompletedAt,
	}
	for _, c := range lead.Challenges {
		doc.Challenges = append(doc.Challenges, c.String())
	}
	if p := lead.DomainProfile; p != nil {
		doc.DomainProfile = &domainProfileDoc{
			MXHosts: p.MXHosts,
			SPF:     p.SPF,
			DMARC:   p.DMARC,
		}
	}
	return doc
}

func (r *leadRepository) fromDoc(doc *leadDoc) *model.Lead {
	lead := &model.Lead{
		ID:          model.LeadID(doc.ID),
		Step:        types.LeadStep(doc.Step),
		Industry:    types.Industry(doc.Industry),
		Domain:      doc.Domain,
		Email:       doc.Email,
		Phone:       doc.Phone,
		CompanySize: types.CompanySize(doc.CompanySize),
		Role:        types.Role(doc.Role),
		Score:       doc.Score,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		CompletedAt: doc.CompletedAt,
	}
	for _, c := range doc.Challenges {
		lead.Challenges = append(lead.Challenges, types.Challenge(c))
	}
	if p := doc.DomainProfile; p != nil {
		lead.DomainProfile = &model.DomainProfile{
			MXHosts: p.MXHosts,
			SPF:     p.SPF,
			DMARC:   p.DMARC,
		}
	}
	return lead
}

// Put creates or replaces a lead document
func (r *leadRepository) Put(ctx context.Context, lead *model.Lead) error {
	if _, err := r.collection().Doc(string(lead.ID)).Set(ctx, r.toDoc(lead)); err != nil {
		return goerr.Wrap(err, "failed to put lead", goerr.V("id", lead.ID))
	}
	return nil
}

// Get retrieves a lead by ID
func (r *leadRepository) Get(ctx context.Context, id model.LeadID) (*model.Lead, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get lead", goerr.V("id", id))
	}

	var doc leadDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal lead", goerr.V("id", id))
	}

	return r.fromDoc(&doc), nil
}

// Update reads, changes and writes the lead in one transaction. Firestore
// retries fn when the document changed concurrently.
func (r *leadRepository) Update(ctx context.Context, id model.LeadID, fn func(*model.Lead) error) (*model.Lead, error) {
	ref := r.collection().Doc(string(id))

	var updated *model.Lead
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get lead", goerr.V("id", id))
		}

		var doc leadDoc
		if err := snap.DataTo(&doc); err != nil {
			return goerr.Wrap(err, "failed to unmarshal lead", goerr.V("id", id))
		}

		lead := r.fromDoc(&doc)
		if err := fn(lead); err != nil {
			return err
		}
		updated = lead
		return tx.Set(ref, r.toDoc(lead))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update lead", goerr.V("id", id))
	}

	return updated, nil
}

// List retrieves the newest leads first. Filtering by step uses the
// step ASC, created_at DESC composite index created by `assessor migrate`.
func (r *leadRepository) List(ctx context.Context, limit int, opts ...interfaces.ListLeadOption) ([]*model.Lead, error) {
	cfg := interfaces.BuildListLeadConfig(opts...)

	query := r.collection().Query
	if step := cfg.Step(); step != nil {
		query = query.Where("step", "==", step.String())
	}
	query = query.OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var leads []*model.Lead
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate leads")
		}

		var doc leadDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal lead", goerr.V("docID", snap.Ref.ID))
		}
		leads = append(leads, r.fromDoc(&doc))
	}

	return leads, nil
}
