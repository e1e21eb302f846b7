package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const assessmentsCollection = "assessments"

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.AssessmentRepository = &assessmentRepository{}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client: client,
	}
}

// assessmentDoc is the Firestore persistence model
type assessmentDoc struct {
	ID          string            `firestore:"id"`
	Industry    string            `firestore:"industry"`
	Step        int               `firestore:"step"`
	Answers     map[string]string `firestore:"answers"`
	Result      *resultDoc        `firestore:"result,omitempty"`
	CreatedAt   time.Time         `firestore:"created_at"`
	UpdatedAt   time.Time         `firestore:"updated_at"`
	CompletedAt *time.Time        `firestore:"completed_at,omitempty"`
}

type resultDoc struct {
	Tier                string                 `firestore:"tier"`
	Percent             float64                `firestore:"percent"`
	Score               int                    `firestore:"score"`
	EstimatedBreachCost string                 `firestore:"estimated_breach_cost"`
	PotentialSavings    string                 `firestore:"potential_savings"`
	Categories          map[string]categoryDoc `firestore:"categories"`
	Recommendations     []string               `firestore:"recommendations"`
	NextSteps           []string               `firestore:"next_steps"`
}

type categoryDoc struct {
	Percent         float64  `firestore:"percent"`
	Score           int      `firestore:"score"`
	Rating          string   `firestore:"rating"`
	Recommendations []string `firestore:"recommendations"`
}

func (r *assessmentRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, assessmentsCollection))
}

func (r *assessmentRepository) toDoc(a *model.Assessment) *assessmentDoc {
	doc := &assessmentDoc{
		ID:          string(a.ID),
		Industry:    a.Industry.String(),
		Step:        a.Step,
		Answers:     make(map[string]string, len(a.Answers)),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		CompletedAt: a.CompletedAt,
	}
	for id, value := range a.Answers {
		doc.Answers[string(id)] = string(value)
	}

	if res := a.Result; res != nil {
		doc.Result = &resultDoc{
			Tier:                res.Tier.String(),
			Percent:             res.Percent,
			Score:               res.Score,
			EstimatedBreachCost: res.EstimatedBreachCost,
			PotentialSavings:    res.PotentialSavings,
			Categories:          make(map[string]categoryDoc, len(res.Categories)),
			Recommendations:     res.Recommendations,
			NextSteps:           res.NextSteps,
		}
		for category, c := range res.Categories {
			doc.Result.Categories[category.String()] = categoryDoc{
				Percent:         c.Percent,
				Score:           c.Score,
				Rating:          string(c.Rating),
				Recommendations: c.Recommendations,
			}
		}
	}

	return doc
}

func (r *assessmentRepository) fromDoc(doc *assessmentDoc) *model.Assessment {
	a := &model.Assessment{
		ID:          model.AssessmentID(doc.ID),
		Industry:    types.Industry(doc.Industry),
		Step:        doc.Step,
		Answers:     make(model.AnswerMap, len(doc.Answers)),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		CompletedAt: doc.CompletedAt,
	}
	for id, value := range doc.Answers {
		a.Answers[types.QuestionID(id)] = types.OptionValue(value)
	}

	if res := doc.Result; res != nil {
		a.Result = &model.AssessmentResult{
			Tier:                types.RiskTier(res.Tier),
			Percent:             res.Percent,
			Score:               res.Score,
			EstimatedBreachCost: res.EstimatedBreachCost,
			PotentialSavings:    res.PotentialSavings,
			Categories:          make(map[types.Category]model.CategoryResult, len(res.Categories)),
			Recommendations:     res.Recommendations,
			NextSteps:           res.NextSteps,
		}
		for category, c := range res.Categories {
			a.Result.Categories[types.Category(category)] = model.CategoryResult{
				Percent:         c.Percent,
				Score:           c.Score,
				Rating:          types.CategoryRating(c.Rating),
				Recommendations: c.Recommendations,
			}
		}
	}

	return a
}

// Put creates or replaces an assessment document
func (r *assessmentRepository) Put(ctx context.Context, assessment *model.Assessment) error {
	if _, err := r.collection().Doc(string(assessment.ID)).Set(ctx, r.toDoc(assessment)); err != nil {
		return goerr.Wrap(err, "failed to put assessment", goerr.V("id", assessment.ID))
	}
	return nil
}

// Get retrieves an assessment by ID
func (r *assessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	snap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var doc assessmentDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}

	return r.fromDoc(&doc), nil
}

// Update reads, changes and writes the assessment in one transaction.
// Firestore retries fn when the document changed concurrently.
func (r *assessmentRepository) Update(ctx context.Context, id model.AssessmentID, fn func(*model.Assessment) error) (*model.Assessment, error) {
	ref := r.collection().Doc(string(id))

	var updated *model.Assessment
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
		}

		var doc assessmentDoc
		if err := snap.DataTo(&doc); err != nil {
			return goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
		}

		assessment := r.fromDoc(&doc)
		if err := fn(assessment); err != nil {
			return err
		}
		updated = assessment
		return tx.Set(ref, r.toDoc(assessment))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update assessment", goerr.V("id", id))
	}

	return updated, nil
}

// Delete removes an assessment. Firestore treats deleting a missing document as success.
func (r *assessmentRepository) Delete(ctx context.Context, id model.AssessmentID) error {
	if _, err := r.collection().Doc(string(id)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V("id", id))
	}
	return nil
}
