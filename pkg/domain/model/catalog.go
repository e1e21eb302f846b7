package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

// Catalog is the complete questionnaire: base questions, per-industry
// extensions, and the canned result content.
type Catalog struct {
	Base       []Question
	Industries map[types.Industry][]Question
	Content    *CannedContent
}

// QuestionSet builds the ordered question list for industry: base questions
// first, then the industry's extension. General or unknown industries get
// the base questions only.
func (c *Catalog) QuestionSet(industry types.Industry) *QuestionSet {
	industry = industry.Normalize()
	questions := make([]Question, 0, len(c.Base)+len(c.Industries[industry]))
	questions = append(questions, c.Base...)
	if industry != types.IndustryGeneral {
		questions = append(questions, c.Industries[industry]...)
	}
	return &QuestionSet{
		Industry:  industry,
		Questions: questions,
	}
}

// Validate checks every question and that question IDs are unique within
// every industry's question set.
func (c *Catalog) Validate() error {
	if len(c.Base) == 0 {
		return goerr.Wrap(ErrEmptyQuestionSet, "catalog needs at least one base question")
	}

	baseIDs := make(map[types.QuestionID]bool, len(c.Base))
	for i := range c.Base {
		q := &c.Base[i]
		if err := q.Validate(); err != nil {
			return err
		}
		if q.Industry != "" {
			return goerr.Wrap(ErrInvalidQuestion, "base question must not declare an industry",
				goerr.V(QuestionIDKey, q.ID), goerr.V(IndustryKey, q.Industry))
		}
		if baseIDs[q.ID] {
			return goerr.Wrap(ErrDuplicateQuestion, "duplicate base question", goerr.V(QuestionIDKey, q.ID))
		}
		baseIDs[q.ID] = true
	}

	for industry, questions := range c.Industries {
		if !industry.IsValid() || industry == types.IndustryGeneral {
			return goerr.Wrap(ErrInvalidQuestion, "industry extension must name a specific industry",
				goerr.V(IndustryKey, industry))
		}

		seen := make(map[types.QuestionID]bool, len(questions))
		for i := range questions {
			q := &questions[i]
			if err := q.Validate(); err != nil {
				return err
			}
			if q.Industry != industry {
				return goerr.Wrap(ErrInvalidQuestion, "question industry does not match its extension",
					goerr.V(QuestionIDKey, q.ID), goerr.V(IndustryKey, industry))
			}
			if baseIDs[q.ID] || seen[q.ID] {
				return goerr.Wrap(ErrDuplicateQuestion, "duplicate industry question",
					goerr.V(QuestionIDKey, q.ID), goerr.V(IndustryKey, industry))
			}
			seen[q.ID] = true
		}
	}

	return nil
}
