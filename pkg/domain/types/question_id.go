package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+([_-][a-z0-9]+)*$`)

// QuestionID identifies a question in the catalog
type QuestionID string

// Validate checks if the QuestionID is valid
func (q QuestionID) Validate() error {
	if q == "" {
		return goerr.New("question ID cannot be empty")
	}
	if !idPattern.MatchString(string(q)) {
		return goerr.New("question ID must be lowercase alphanumeric with hyphens or underscores", goerr.V("id", q))
	}
	return nil
}

// String returns the string representation of QuestionID
func (q QuestionID) String() string {
	return string(q)
}

// OptionValue identifies one answer option of a question
type OptionValue string

// Validate checks if the OptionValue is valid
func (o OptionValue) Validate() error {
	if o == "" {
		return goerr.New("option value cannot be empty")
	}
	if !idPattern.MatchString(string(o)) {
		return goerr.New("option value must be lowercase alphanumeric with hyphens or underscores", goerr.V("value", o))
	}
	return nil
}

// String returns the string representation of OptionValue
func (o OptionValue) String() string {
	return string(o)
}
