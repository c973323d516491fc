package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lcalzada-xor/airsentry/internal/core/ports"
	"github.com/lcalzada-xor/airsentry/internal/telemetry"
)

// ErrCycleFailed marks a scan cycle aborted by an acquisition failure. It is
// recoverable: the monitor returns to idle and retries on the next tick.
var ErrCycleFailed = errors.New("scan cycle failed")

// ErrCycleInFlight is returned when a cycle is requested while one is
// already running. At most one cycle is ever in flight.
var ErrCycleInFlight = errors.New("scan cycle already in flight")

// Cycle states.
const (
	StateIdle       = "idle"
	StateScanning   = "scanning"
	StateAnalyzing  = "analyzing"
	StatePublishing = "publishing"
)

// Monitor drives the periodic scan/analyze/publish loop. The cycle guard is
// an explicit mutex owned by the Monitor, and publishing fans out over an
// owned subscriber list.
type Monitor struct {
	scanner  ports.Scanner
	store    ports.HistoryStore
	analyzer ports.Analyzer

	interval     time.Duration
	historyDepth int

	cycleGuard  sync.Mutex // held for the whole of one cycle
	mu          sync.RWMutex
	state       string
	subscribers []ports.FindingSubscriber
}

// New creates a monitor. interval is the fixed inter-cycle delay;
// historyDepth bounds the history window requested each cycle.
func New(scanner ports.Scanner, store ports.HistoryStore, analyzer ports.Analyzer, interval time.Duration, historyDepth int) *Monitor {
	return &Monitor{
		scanner:      scanner,
		store:        store,
		analyzer:     analyzer,
		interval:     interval,
		historyDepth: historyDepth,
		state:        StateIdle,
	}
}

// OnFindings registers a subscriber for the publishing phase. A failing
// subscriber never blocks or fails delivery to the others.
func (m *Monitor) OnFindings(fn ports.FindingSubscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// State returns the current cycle phase.
func (m *Monitor) State() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Monitor) setState(state string) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// Run executes cycles until ctx is cancelled. Cancellation takes effect only
// at the idle boundary, never mid-cycle, so findings are never partially
// computed or partially published. The next cycle starts one full interval
// after the previous one finished; slow cycles defer, they never overlap.
func (m *Monitor) Run(ctx context.Context) error {
	slog.Info("monitor starting", "interval", m.interval, "history_depth", m.historyDepth)

	timer := time.NewTimer(0) // first cycle immediately
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("monitor stopping")
			return ctx.Err()
		case <-timer.C:
			if err := m.RunCycle(context.WithoutCancel(ctx)); err != nil {
				slog.Warn("cycle failed, will retry", "error", err)
			}
			timer.Reset(m.interval)
		}
	}
}

// RunCycle performs exactly one Scanning -> Analyzing -> Publishing pass.
// It returns ErrCycleInFlight if a cycle is already running, or a
// ErrCycleFailed-wrapped error when acquisition fails.
func (m *Monitor) RunCycle(ctx context.Context) error {
	if !m.cycleGuard.TryLock() {
		return ErrCycleInFlight
	}
	defer m.cycleGuard.Unlock()
	defer m.setState(StateIdle)

	started := time.Now()
	ctx, span := otel.Tracer("airsentry/monitor").Start(ctx, "scan_cycle")
	defer span.End()

	m.setState(StateScanning)
	snap, err := m.scanner.AcquireSnapshot(ctx)
	if err != nil {
		telemetry.CycleFailures.WithLabelValues(StateScanning).Inc()
		return fmt.Errorf("%w: acquire snapshot: %w", ErrCycleFailed, err)
	}

	m.setState(StateAnalyzing)
	history, err := m.store.History(ctx, m.historyDepth)
	if err != nil {
		telemetry.CycleFailures.WithLabelValues(StateAnalyzing).Inc()
		return fmt.Errorf("%w: acquire history: %w", ErrCycleFailed, err)
	}

	report := m.analyzer.Analyze(ctx, snap, history)

	m.setState(StatePublishing)
	result := ports.CycleResult{
		Timestamp:    snap.Timestamp,
		NetworkCount: len(snap.Observations),
		Findings:     report.Findings(),
		Report:       report,
		Snapshot:     snap,
	}
	m.publish(result)

	// The snapshot joins history only after analysis, so a cycle never sees
	// itself as "known".
	if err := m.store.RecordSnapshot(ctx, snap); err != nil {
		slog.Warn("failed to record snapshot", "error", err)
	}

	telemetry.ScanCycles.Inc()
	telemetry.NetworksObserved.Set(float64(result.NetworkCount))
	for _, f := range result.Findings {
		telemetry.FindingsEmitted.WithLabelValues(string(f.Type), f.Severity.String()).Inc()
	}
	telemetry.CycleDuration.Observe(time.Since(started).Seconds())

	span.SetAttributes(
		attribute.Int("networks", result.NetworkCount),
		attribute.Int("findings", len(result.Findings)),
	)

	slog.Info("cycle complete",
		"networks", result.NetworkCount,
		"threats", len(report.Assessments),
		"findings", len(result.Findings),
		"risk", report.Summary.RiskScore,
		"took", time.Since(started))
	return nil
}

// publish fans the result out to every subscriber, isolating failures.
func (m *Monitor) publish(result ports.CycleResult) {
	m.mu.RLock()
	subs := make([]ports.FindingSubscriber, len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.RUnlock()

	slog.Debug("publishing cycle result", "subscribers", len(subs), "findings", len(result.Findings))
	for i, fn := range subs {
		m.deliver(i, fn, result)
	}
}

func (m *Monitor) deliver(i int, fn ports.FindingSubscriber, result ports.CycleResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("subscriber panicked", "subscriber", i, "panic", r)
		}
	}()
	fn(result)
}
