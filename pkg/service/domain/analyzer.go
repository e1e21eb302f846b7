package domain

import (
	"context"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/miekg/dns"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

const (
	resolvConfPath = "/etc/resolv.conf"
	fallbackServer = "8.8.8.8:53"
	defaultTimeout = 2 * time.Second

	spfPrefix   = "v=spf1"
	dmarcPrefix = "v=dmarc1"
)

// ErrLookupFailed is returned when the DNS server answers with an error code
var ErrLookupFailed = goerr.New("dns lookup failed")

// Analyzer reads the mail related DNS records of a domain
type Analyzer struct {
	client *dns.Client
	server string
}

var _ interfaces.DomainAnalyzer = &Analyzer{}

// Option is a functional option for Analyzer configuration
type Option func(*Analyzer)

// WithServer sets the DNS server address (host:port)
func WithServer(addr string) Option {
	return func(a *Analyzer) {
		a.server = addr
	}
}

// WithTimeout sets the per query timeout
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		a.client.Timeout = d
	}
}

// New creates an Analyzer. Without WithServer the first nameserver of
// /etc/resolv.conf is used.
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		client: &dns.Client{Net: "udp", Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.server == "" {
		a.server = fallbackServer
		if conf, err := dns.ClientConfigFromFile(resolvConfPath); err == nil && len(conf.Servers) > 0 {
			a.server = net.JoinHostPort(conf.Servers[0], conf.Port)
		}
	}

	if _, _, err := net.SplitHostPort(a.server); err != nil {
		return nil, goerr.Wrap(err, "invalid DNS server address", goerr.V("server", a.server))
	}

	return a, nil
}

// Analyze looks up MX, SPF and DMARC records of domain in parallel. A
// domain that does not exist yields an empty profile, not an error.
func (a *Analyzer) Analyze(ctx context.Context, domain string) (*model.DomainProfile, error) {
	domain = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domain), "."))
	if domain == "" {
		return nil, goerr.New("domain is required")
	}

	profile := &model.DomainProfile{}
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		answers, err := a.query(ctx, domain, dns.TypeMX)
		if err != nil {
			return err
		}
		for _, rr := range answers {
			if mx, ok := rr.(*dns.MX); ok {
				profile.MXHosts = append(profile.MXHosts, mx.Mx)
			}
		}
		slices.Sort(profile.MXHosts)
		return nil
	})

	eg.Go(func() error {
		answers, err := a.query(ctx, domain, dns.TypeTXT)
		if err != nil {
			return err
		}
		profile.SPF = findTXT(answers, spfPrefix)
		return nil
	})

	eg.Go(func() error {
		answers, err := a.query(ctx, "_dmarc."+domain, dns.TypeTXT)
		if err != nil {
			return err
		}
		profile.DMARC = findTXT(answers, dmarcPrefix)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return profile, nil
}

func (a *Analyzer) query(ctx context.Context, name string, qtype uint16) ([]dns.RR, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true

	resp, _, err := a.client.ExchangeContext(ctx, msg, a.server)
	if err != nil {
		return nil, goerr.Wrap(err, "dns exchange failed",
			goerr.V("name", name), goerr.V("type", dns.TypeToString[qtype]), goerr.V("server", a.server))
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
		return resp.Answer, nil
	case dns.RcodeNameError:
		return nil, nil
	default:
		return nil, goerr.Wrap(ErrLookupFailed, "unexpected rcode",
			goerr.V("name", name), goerr.V("type", dns.TypeToString[qtype]), goerr.V("rcode", dns.RcodeToString[resp.Rcode]))
	}
}

// findTXT returns the first TXT record starting with prefix, case-insensitively
func findTXT(answers []dns.RR, prefix string) string {
	for _, rr := range answers {
		txt, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}
		value := strings.Join(txt.Txt, "")
		if strings.HasPrefix(strings.ToLower(value), prefix) {
			return value
		}
	}
	return ""
}
