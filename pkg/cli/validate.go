package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/verteidiq/assessor/pkg/cli/config"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/utils/logging"
)

func cmdValidate(w io.Writer) *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var checkRepository bool

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "check-repository",
		Usage:       "Also connect to the repository backend and read from it",
		Destination: &checkRepository,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the question catalog and optionally the repository connection",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			// Step 1: Load and validate the catalog
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			source := catalogCfg.Path()
			if source == "" {
				source = "built-in"
			}
			fmt.Fprintf(w, "Catalog %s is valid\n", source)
			for _, industry := range types.AllIndustries() {
				fmt.Fprintf(w, "  %-13s %d questions\n", industry, catalog.QuestionSet(industry).Len())
			}

			// Step 2: Optionally check that the repository is reachable
			if !checkRepository {
				return nil
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			if _, err := repo.Lead().List(ctx, 1); err != nil {
				return goerr.Wrap(err, "repository check failed", goerr.V("repository", repoCfg))
			}
			fmt.Fprintln(w, "Repository is reachable")
			return nil
		},
	}
}
