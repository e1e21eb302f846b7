package demo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/utils/logging"
)

const (
	progressStep   = 10
	progressMax    = 100
	threatChance   = 0.3
	blockChance    = 0.9
	visibleThreats = 3

	defaultInterval = time.Second
)

// Severity of a demo threat
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// ThreatStatus is what the feed shows next to a threat
type ThreatStatus string

const (
	ThreatStatusDetected  ThreatStatus = "detected"
	ThreatStatusMitigated ThreatStatus = "mitigated"
)

// Threat is one entry of the live feed
type Threat struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Severity   Severity     `json:"severity"`
	Status     ThreatStatus `json:"status"`
	Blocked    bool         `json:"blocked"`
	DetectedAt time.Time    `json:"detected_at"`
}

// DefaultThreats is the catalog threats are drawn from
var DefaultThreats = []Threat{
	{ID: "1", Type: "SQL Injection", Severity: SeverityCritical},
	{ID: "2", Type: "Cross-Site Scripting", Severity: SeverityHigh},
	{ID: "3", Type: "Weak Authentication", Severity: SeverityMedium},
	{ID: "4", Type: "Information Disclosure", Severity: SeverityLow},
}

// Snapshot is a point in time copy of the simulator state
type Snapshot struct {
	Progress        int      `json:"progress"`
	Threats         []Threat `json:"threats"`
	Ticks           int      `json:"ticks"`
	ThreatsDetected int      `json:"threats_detected"`
	ThreatsBlocked  int      `json:"threats_blocked"`
}

// Simulator drives the fake live threat feed of the marketing demo
type Simulator struct {
	sampler  interfaces.Sampler
	catalog  []Threat
	interval time.Duration
	now      func() time.Time

	mu    sync.Mutex
	state Snapshot

	runMu   sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// Option is a functional option for Simulator configuration
type Option func(*Simulator)

// WithInterval sets the tick interval used by Start
func WithInterval(d time.Duration) Option {
	return func(s *Simulator) {
		s.interval = d
	}
}

// WithThreats replaces the threat catalog
func WithThreats(threats []Threat) Option {
	return func(s *Simulator) {
		s.catalog = slices.Clone(threats)
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		s.now = now
	}
}

// NewSimulator creates a stopped simulator drawing randomness from sampler
func NewSimulator(sampler interfaces.Sampler, opts ...Option) *Simulator {
	s := &Simulator{
		sampler:  sampler,
		catalog:  slices.Clone(DefaultThreats),
		interval: defaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Threats = []Threat{}
	return s
}

// Tick advances the simulation by one step. Progress goes up by 10 and
// falls back to 0 after reaching 100. With a 30% chance a catalog threat
// not already on screen is added; only the last three stay visible. An
// added threat is blocked with a 90% chance.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Ticks++
	if s.state.Progress >= progressMax {
		s.state.Progress = 0
	} else {
		s.state.Progress += progressStep
	}

	if len(s.catalog) == 0 || s.sampler.Float64() >= threatChance {
		return
	}

	candidate := s.catalog[s.sampler.IntN(len(s.catalog))]
	if slices.ContainsFunc(s.state.Threats, func(t Threat) bool { return t.ID == candidate.ID }) {
		return
	}

	candidate.Blocked = s.sampler.Float64() < blockChance
	candidate.Status = ThreatStatusDetected
	if candidate.Blocked {
		candidate.Status = ThreatStatusMitigated
		s.state.ThreatsBlocked++
	}
	candidate.DetectedAt = s.now().UTC()
	s.state.ThreatsDetected++

	threats := append(s.state.Threats, candidate)
	if len(threats) > visibleThreats {
		threats = threats[len(threats)-visibleThreats:]
	}
	s.state.Threats = slices.Clone(threats)
}

// Snapshot returns a copy of the current state
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Threats = slices.Clone(s.state.Threats)
	return snap
}

// Start runs Tick on the configured interval until Stop is called or ctx is done
func (s *Simulator) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.running {
		return goerr.New("demo simulator is already running")
	}
	if s.interval <= 0 {
		return goerr.New("demo simulator interval must be positive", goerr.V("interval", s.interval))
	}

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.running = true

	logging.From(ctx).Info("Demo simulator starting", "interval", s.interval.String())
	go s.run(ctx, s.stopCh, s.doneCh)
	return nil
}

// Stop signals the loop to stop and waits for it. It is a no-op when not running.
func (s *Simulator) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	s.running = false
	logging.Default().Info("Demo simulator stopped")
}

func (s *Simulator) run(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick()

		case <-stopCh:
			return

		case <-ctx.Done():
			logging.From(ctx).Info("Demo simulator context cancelled")
			return
		}
	}
}
