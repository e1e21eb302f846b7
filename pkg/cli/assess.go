package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/verteidiq/assessor/pkg/cli/config"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/repository/memory"
	"github.com/verteidiq/assessor/pkg/service/content"
	"github.com/verteidiq/assessor/pkg/usecase"
)

// backValue is offered next to the options of every question but the first.
// It cannot collide with an option value.
const backValue = "<back>"

// questionPrompter asks the current question of state and returns the chosen
// option value or backValue
type questionPrompter func(ctx context.Context, state *usecase.AssessmentState) (string, error)

func cmdAssess(w io.Writer) *cli.Command {
	var industry string
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "industry",
			Aliases:     []string{"i"},
			Usage:       "Industry question set; asked interactively if omitted",
			Destination: &industry,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "assess",
		Usage: "Take the security risk assessment in the terminal",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load question catalog")
			}

			if industry == "" {
				industry, err = askIndustry(ctx)
				if err != nil {
					return abortedOr(w, err)
				}
			}
			selected, err := types.ParseIndustry(industry)
			if err != nil {
				return goerr.Wrap(err, "invalid industry")
			}

			uc := usecase.New(memory.New(), content.New(catalog))
			result, err := runAssessment(ctx, uc, selected, huhPrompter)
			if err != nil {
				return abortedOr(w, err)
			}

			fmt.Fprintln(w)
			printResult(w, result)
			return nil
		},
	}
}

// runAssessment drives a session to its result with prompt
func runAssessment(ctx context.Context, uc *usecase.UseCases, industry types.Industry, prompt questionPrompter) (*model.AssessmentResult, error) {
	state, err := uc.Assessment.Start(ctx, industry)
	if err != nil {
		return nil, err
	}
	id := state.Assessment.ID

	for state.Question != nil {
		answer, err := prompt(ctx, state)
		if err != nil {
			return nil, err
		}

		if answer == backValue {
			state, err = uc.Assessment.Retreat(ctx, id)
		} else {
			state, err = uc.Assessment.Advance(ctx, id, types.OptionValue(answer))
		}
		if err != nil {
			return nil, err
		}
	}

	return state.Assessment.Result, nil
}

func huhPrompter(ctx context.Context, state *usecase.AssessmentState) (string, error) {
	q := state.Question

	options := make([]huh.Option[string], 0, len(q.Options)+1)
	for _, opt := range q.Options {
		label := opt.Label
		if opt.Description != "" {
			label = fmt.Sprintf("%s (%s)", opt.Label, opt.Description)
		}
		options = append(options, huh.NewOption(label, opt.Value.String()))
	}
	if state.Step > 0 {
		options = append(options, huh.NewOption("Back", backValue))
	}

	var answer string
	if prev, ok := state.Assessment.Answers[q.ID]; ok {
		answer = prev.String()
	}

	field := huh.NewSelect[string]().
		Title(fmt.Sprintf("[%d/%d] %s", state.Step+1, state.Total, q.Prompt)).
		Options(options...).
		Value(&answer)

	if err := huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx); err != nil {
		return "", err
	}
	return answer, nil
}

func askIndustry(ctx context.Context) (string, error) {
	industry := types.IndustryGeneral.String()

	options := make([]huh.Option[string], 0, len(types.AllIndustries()))
	for _, i := range types.AllIndustries() {
		options = append(options, huh.NewOption(i.String(), i.String()))
	}

	field := huh.NewSelect[string]().
		Title("Which industry are you in?").
		Options(options...).
		Value(&industry)

	if err := huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx); err != nil {
		return "", err
	}
	return industry, nil
}

func abortedOr(w io.Writer, err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(w, "Assessment aborted")
		return nil
	}
	return err
}
