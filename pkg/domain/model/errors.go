package model

import "github.com/m-mizutani/goerr/v2"

// Wizard and catalog errors
var (
	ErrNoOptionSelected  = goerr.New("an option must be selected")
	ErrInvalidOption     = goerr.New("option is not offered by the current question")
	ErrEmptyQuestionSet  = goerr.New("question set has no questions")
	ErrInvalidQuestion   = goerr.New("invalid question definition")
	ErrDuplicateQuestion = goerr.New("duplicate question ID")
)

// Context keys for error values
const (
	QuestionIDKey  = "question_id"
	OptionValueKey = "option_value"
	IndustryKey    = "industry"
)
