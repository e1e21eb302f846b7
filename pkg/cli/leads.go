package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/verteidiq/assessor/pkg/cli/config"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/service/content"
	"github.com/verteidiq/assessor/pkg/usecase"
	"github.com/verteidiq/assessor/pkg/utils/logging"
)

func cmdLeads(w io.Writer) *cli.Command {
	var limit int
	var step string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of leads to show",
			Value:       20,
			Destination: &limit,
		},
		&cli.StringFlag{
			Name:        "step",
			Usage:       "Only show leads at this step (contact, qualification, completed)",
			Destination: &step,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "leads",
		Usage: "List the most recent leads",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			catalog, err := config.LoadCatalog("")
			if err != nil {
				return err
			}

			uc := usecase.New(repo, content.New(catalog))
			leads, err := uc.Lead.Recent(ctx, limit, types.LeadStep(step))
			if err != nil {
				return goerr.Wrap(err, "failed to list leads")
			}

			printLeads(w, leads)
			return nil
		},
	}
}

// printLeads writes one line per lead, newest first
func printLeads(w io.Writer, leads []*model.Lead) {
	if len(leads) == 0 {
		fmt.Fprintln(w, "No leads found")
		return
	}

	bold := color.New(color.Bold)
	bold.Fprintf(w, "%-20s  %-13s  %-24s  %-28s  %-9s  %-10s  %5s\n",
		"CREATED", "STEP", "DOMAIN", "EMAIL", "SIZE", "ROLE", "SCORE")
	for _, lead := range leads {
		fmt.Fprintf(w, "%-20s  %-13s  %-24s  %-28s  %-9s  %-10s  %s\n",
			lead.CreatedAt.UTC().Format(time.DateTime),
			lead.Step,
			lead.Domain,
			orDash(lead.Email),
			orDash(lead.CompanySize.String()),
			orDash(lead.Role.String()),
			leadScoreColor(lead).Sprintf("%5d", lead.Score),
		)
	}
}

func leadScoreColor(lead *model.Lead) *color.Color {
	switch {
	case lead.Step != types.LeadStepCompleted:
		return color.New(color.Faint)
	case lead.Score >= 80:
		return color.New(color.FgGreen, color.Bold)
	case lead.Score >= 50:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Reset)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
