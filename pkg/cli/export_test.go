package cli

import (
	"context"
	"io"
)

const BackValue = backValue

type QuestionPrompter = questionPrompter

var (
	RunAssessment = runAssessment
	PrintResult   = printResult
	PrintLeads    = printLeads
)

// RunWithWriter runs the app with command output sent to w
func RunWithWriter(ctx context.Context, args []string, w io.Writer) error {
	return newApp("test", w).Run(ctx, args)
}
