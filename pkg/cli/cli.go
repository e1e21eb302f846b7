package cli

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/verteidiq/assessor/pkg/cli/config"
	"github.com/verteidiq/assessor/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	return newApp(version, os.Stdout).Run(ctx, args)
}

func newApp(version string, w io.Writer) *app {
	return &app{version: version, w: w}
}

type app struct {
	version string
	w       io.Writer
}

func (a *app) Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	flags := loggerCfg.Flags()
	flags = append(flags, sentryCfg.Flags()...)

	cmd := &cli.Command{
		Name:    "assessor",
		Usage:   "Security risk assessment and lead capture backend",
		Version: a.version,
		Flags:   flags,
		Writer:  a.w,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, f)

			flush, err := sentryCfg.Configure(a.version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Debug("Starting assessor", "logger", loggerCfg, "sentry", sentryCfg)
			return logging.With(ctx, logging.Default()), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdScore(a.w),
			cmdAssess(a.w),
			cmdValidate(a.w),
			cmdLeads(a.w),
			cmdMigrate(),
		},
	}

	if err := cmd.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
