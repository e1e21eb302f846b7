package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

// Wizard walks an Assessment through its QuestionSet one question at a time.
// The step index only moves by one; the terminal state is reached by
// answering the last question and holds the computed result.
type Wizard struct {
	set        *QuestionSet
	content    *CannedContent
	assessment *Assessment
}

// NewWizard binds assessment to set. A step index left out of range by a
// changed catalog is clamped to the last question.
func NewWizard(set *QuestionSet, content *CannedContent, assessment *Assessment) *Wizard {
	if assessment.Answers == nil {
		assessment.Answers = AnswerMap{}
	}
	if assessment.Step >= set.Len() {
		assessment.Step = max(set.Len()-1, 0)
	}
	if assessment.Step < 0 {
		assessment.Step = 0
	}

	return &Wizard{
		set:        set,
		content:    content,
		assessment: assessment,
	}
}

// Assessment returns the wrapped session
func (w *Wizard) Assessment() *Assessment {
	return w.assessment
}

// Current returns the question at the current step
func (w *Wizard) Current() *Question {
	return w.set.At(w.assessment.Step)
}

// Total is the number of questions in the set
func (w *Wizard) Total() int {
	return w.set.Len()
}

// Completed reports whether the wizard is in the results state
func (w *Wizard) Completed() bool {
	return w.assessment.Completed()
}

// Progress is the share of questions answered, in percent
func (w *Wizard) Progress() int {
	if w.Completed() {
		return 100
	}
	if w.set.Len() == 0 {
		return 0
	}

	answered := 0
	for _, q := range w.set.Questions {
		if _, ok := w.assessment.Answers[q.ID]; ok {
			answered++
		}
	}
	return answered * 100 / w.set.Len()
}

// Advance records answer for the current question and moves to the next
// one. Answering the last question scores the session and returns the
// result; doing so again with the same answer yields an identical result.
func (w *Wizard) Advance(answer types.OptionValue) (*AssessmentResult, error) {
	q := w.Current()
	if q == nil {
		return nil, goerr.Wrap(ErrEmptyQuestionSet, "cannot advance", goerr.V(IndustryKey, w.set.Industry))
	}
	if answer == "" {
		return nil, goerr.Wrap(ErrNoOptionSelected, "cannot advance", goerr.V(QuestionIDKey, q.ID))
	}
	if _, ok := q.Option(answer); !ok {
		return nil, goerr.Wrap(ErrInvalidOption, "cannot advance",
			goerr.V(QuestionIDKey, q.ID), goerr.V(OptionValueKey, answer))
	}

	w.assessment.Answers[q.ID] = answer

	if w.assessment.Step < w.set.Len()-1 {
		w.assessment.Step++
		return nil, nil
	}

	w.assessment.Result = Score(w.set, w.assessment.Answers, w.content)
	return w.assessment.Result, nil
}

// Retreat moves back one question; it is a no-op on the first question. In
// the results state it returns to the last question and drops the result,
// keeping the answers.
func (w *Wizard) Retreat() {
	if w.Completed() {
		w.assessment.Result = nil
		return
	}
	if w.assessment.Step > 0 {
		w.assessment.Step--
	}
}

// Reset clears answers and result and returns to the first question
func (w *Wizard) Reset() {
	w.assessment.Answers = AnswerMap{}
	w.assessment.Result = nil
	w.assessment.Step = 0
}
