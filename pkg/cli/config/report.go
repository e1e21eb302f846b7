package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/verteidiq/assessor/pkg/service/report"
)

// Report holds CLI flags for assessment report export
type Report struct {
	bucket string
	prefix string
}

func (x *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "report-bucket",
			Usage:       "Cloud Storage bucket receiving completed assessment reports",
			Category:    "Report",
			Destination: &x.bucket,
			Sources:     cli.EnvVars("ASSESSOR_REPORT_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "report-prefix",
			Usage:       "Object name prefix for assessment reports",
			Value:       "reports/",
			Category:    "Report",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("ASSESSOR_REPORT_PREFIX"),
		},
	}
}

func (x Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("prefix", x.prefix),
	)
}

// Configure creates the report store, or nil when no bucket is configured.
// The caller closes the returned store.
func (x *Report) Configure(ctx context.Context) (*report.Store, error) {
	if x.bucket == "" {
		return nil, nil
	}

	store, err := report.New(ctx, x.bucket, report.WithPrefix(x.prefix))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize report store")
	}
	return store, nil
}
