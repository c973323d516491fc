package ports

import (
	"context"
	"errors"
	"time"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// ErrScanUnavailable is returned by a Scanner when no snapshot can be
// acquired (interface down, scan tool missing, transient radio failure).
var ErrScanUnavailable = errors.New("scan unavailable")

// Scanner is the external scanning collaborator. Implementations own their
// timeouts via the supplied context.
type Scanner interface {
	// AcquireSnapshot performs one scan pass and returns the structured
	// observations. Fails with ErrScanUnavailable (possibly wrapped).
	AcquireSnapshot(ctx context.Context) (domain.ScanSnapshot, error)
}

// HistoryProvider supplies prior snapshots, oldest to newest. Retention and
// trimming are owned by the provider, not by the analysis engine.
type HistoryProvider interface {
	History(ctx context.Context, maxRecords int) (domain.HistoryWindow, error)
}

// SnapshotRecorder persists a completed cycle's snapshot so it becomes part
// of future history windows.
type SnapshotRecorder interface {
	RecordSnapshot(ctx context.Context, snap domain.ScanSnapshot) error
}

// HistoryStore combines the read and write sides of snapshot persistence.
type HistoryStore interface {
	HistoryProvider
	SnapshotRecorder
}

// Analyzer is the pure analysis entry point. Safe to call repeatedly and
// concurrently with distinct inputs.
type Analyzer interface {
	Analyze(ctx context.Context, snap domain.ScanSnapshot, history domain.HistoryWindow) domain.AnalysisReport
}

// CycleResult is what the publishing phase hands to each subscriber.
type CycleResult struct {
	Timestamp    time.Time              `json:"timestamp"`
	NetworkCount int                    `json:"network_count"`
	Findings     []domain.ThreatFinding `json:"findings"`
	Report       domain.AnalysisReport  `json:"report"`
	Snapshot     domain.ScanSnapshot    `json:"snapshot"`
}

// FindingSubscriber receives each published cycle result. A failing or
// panicking subscriber must not affect delivery to the others.
type FindingSubscriber func(result CycleResult)
