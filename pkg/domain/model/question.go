package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

// Option is one selectable answer of a question
type Option struct {
	Value       types.OptionValue
	Label       string
	Description string
	Weight      int
}

// Question is an immutable questionnaire entry
type Question struct {
	ID       types.QuestionID
	Prompt   string
	Category types.Category
	Industry types.Industry // empty for base questions
	Options  []Option
}

// Option looks up an option by value
func (q *Question) Option(value types.OptionValue) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].Value == value {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// MaxWeight is the highest weight among the options
func (q *Question) MaxWeight() int {
	maxWeight := 0
	for _, opt := range q.Options {
		maxWeight = max(maxWeight, opt.Weight)
	}
	return maxWeight
}

// Validate checks ID format, category, and that options are distinct with a positive max weight
func (q *Question) Validate() error {
	if err := q.ID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidQuestion, err.Error(), goerr.V(QuestionIDKey, q.ID))
	}
	if q.Prompt == "" {
		return goerr.Wrap(ErrInvalidQuestion, "prompt is required", goerr.V(QuestionIDKey, q.ID))
	}
	if !q.Category.IsValid() {
		return goerr.Wrap(ErrInvalidQuestion, "unknown category",
			goerr.V(QuestionIDKey, q.ID), goerr.V("category", q.Category))
	}
	if q.Industry != "" && !q.Industry.IsValid() {
		return goerr.Wrap(ErrInvalidQuestion, "unknown industry",
			goerr.V(QuestionIDKey, q.ID), goerr.V(IndustryKey, q.Industry))
	}
	if len(q.Options) < 2 {
		return goerr.Wrap(ErrInvalidQuestion, "at least two options are required", goerr.V(QuestionIDKey, q.ID))
	}

	seen := make(map[types.OptionValue]bool, len(q.Options))
	for _, opt := range q.Options {
		if err := opt.Value.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidQuestion, err.Error(), goerr.V(QuestionIDKey, q.ID))
		}
		if seen[opt.Value] {
			return goerr.Wrap(ErrInvalidQuestion, "duplicate option value",
				goerr.V(QuestionIDKey, q.ID), goerr.V(OptionValueKey, opt.Value))
		}
		seen[opt.Value] = true

		if opt.Label == "" {
			return goerr.Wrap(ErrInvalidQuestion, "option label is required",
				goerr.V(QuestionIDKey, q.ID), goerr.V(OptionValueKey, opt.Value))
		}
		if opt.Weight < 0 {
			return goerr.Wrap(ErrInvalidQuestion, "option weight must not be negative",
				goerr.V(QuestionIDKey, q.ID), goerr.V(OptionValueKey, opt.Value), goerr.V("weight", opt.Weight))
		}
	}

	if q.MaxWeight() == 0 {
		return goerr.Wrap(ErrInvalidQuestion, "at least one option needs a positive weight", goerr.V(QuestionIDKey, q.ID))
	}

	return nil
}

// QuestionSet is the ordered list of questions presented for one industry
type QuestionSet struct {
	Industry  types.Industry
	Questions []Question
}

// Len returns the number of questions
func (s *QuestionSet) Len() int {
	return len(s.Questions)
}

// Lookup finds a question by ID
func (s *QuestionSet) Lookup(id types.QuestionID) (*Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], true
		}
	}
	return nil, false
}

// At returns the question at index, or nil when out of range
func (s *QuestionSet) At(index int) *Question {
	if index < 0 || index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[index]
}
