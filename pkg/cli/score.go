package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"github.com/verteidiq/assessor/pkg/cli/config"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/repository/memory"
	"github.com/verteidiq/assessor/pkg/service/content"
	"github.com/verteidiq/assessor/pkg/usecase"
)

// answerFile is the --answers document:
//
//	industry = "finance"
//
//	[answers]
//	company_size = "medium"
type answerFile struct {
	Industry string            `toml:"industry"`
	Answers  map[string]string `toml:"answers"`
}

func loadAnswers(path string) (*answerFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read answers file", goerr.V("path", path))
	}

	var f answerFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse answers file", goerr.V("path", path))
	}
	return &f, nil
}

func (f *answerFile) answerMap() model.AnswerMap {
	answers := make(model.AnswerMap, len(f.Answers))
	for id, value := range f.Answers {
		answers[types.QuestionID(id)] = types.OptionValue(value)
	}
	return answers
}

func cmdScore(w io.Writer) *cli.Command {
	var answersPath string
	var industry string
	var asJSON bool
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "answers",
			Aliases:     []string{"a"},
			Usage:       "TOML file with an [answers] table of question ID to option value",
			Required:    true,
			Destination: &answersPath,
		},
		&cli.StringFlag{
			Name:        "industry",
			Aliases:     []string{"i"},
			Usage:       "Industry question set (general, finance, healthcare, manufacturing); overrides the file",
			Destination: &industry,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the result as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "score",
		Usage: "Score a set of questionnaire answers",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load question catalog")
			}

			f, err := loadAnswers(answersPath)
			if err != nil {
				return err
			}
			if industry != "" {
				f.Industry = industry
			}
			selected, err := types.ParseIndustry(f.Industry)
			if err != nil {
				return goerr.Wrap(err, "invalid industry")
			}

			uc := usecase.New(memory.New(), content.New(catalog))
			result, err := uc.Assessment.Score(ctx, selected, f.answerMap())
			if err != nil {
				return goerr.Wrap(err, "failed to score answers")
			}

			if asJSON {
				encoder := json.NewEncoder(w)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(result); err != nil {
					return goerr.Wrap(err, "failed to write result")
				}
				return nil
			}

			printResult(w, result)
			return nil
		},
	}
}
