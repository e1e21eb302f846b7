package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/verteidiq/assessor/pkg/service/domain"
)

// Lead holds CLI flags for the lead capture backend calls
type Lead struct {
	stepTimeout time.Duration
	dnsServer   string
}

func (x *Lead) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "lead-step-timeout",
			Usage:       "Timeout of the backend call of each lead capture step",
			Value:       5 * time.Second,
			Category:    "Lead",
			Destination: &x.stepTimeout,
			Sources:     cli.EnvVars("ASSESSOR_LEAD_STEP_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "dns-server",
			Usage:       "DNS server (host:port) for domain analysis; system resolver if omitted",
			Category:    "Lead",
			Destination: &x.dnsServer,
			Sources:     cli.EnvVars("ASSESSOR_DNS_SERVER"),
		},
	}
}

func (x Lead) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("step-timeout", x.stepTimeout),
		slog.String("dns-server", x.dnsServer),
	)
}

// StepTimeout returns the configured step timeout
func (x *Lead) StepTimeout() time.Duration {
	return x.stepTimeout
}

// Configure creates the DNS domain analyzer
func (x *Lead) Configure() (*domain.Analyzer, error) {
	if x.stepTimeout <= 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "lead step timeout must be positive", goerr.V("timeout", x.stepTimeout))
	}

	var opts []domain.Option
	if x.dnsServer != "" {
		opts = append(opts, domain.WithServer(x.dnsServer))
	}

	analyzer, err := domain.New(opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize domain analyzer")
	}
	return analyzer, nil
}
