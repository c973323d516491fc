package analysis

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// Engine runs the full heuristic battery over one snapshot. It holds no
// state between calls beyond the registered checks, so Analyze is safe to
// call repeatedly and concurrently with distinct inputs.
type Engine struct {
	checks []Check
}

// NewEngine creates an engine with the default detection battery.
// Check order is fixed so finding order is deterministic for equal inputs.
func NewEngine() *Engine {
	return &Engine{
		checks: []Check{
			&OpenNetworkCheck{},
			&SuspiciousSSIDCheck{},
			&WPSCheck{},
			&MultipleBSSIDsCheck{},
			&MultiSSIDSameOUICheck{},
			&BeaconFloodCheck{},
			&NearCloneCheck{},
			&InconsistentCapabilitiesCheck{},
			&SecurityChangeCheck{},
			&EvilTwinCheck{},
			&MACSpoofingCheck{},
			&SignalStrengthCheck{},
			&ChannelShiftCheck{},
		},
	}
}

// AddCheck registers an additional heuristic after the default battery.
func (e *Engine) AddCheck(c Check) {
	e.checks = append(e.checks, c)
}

// Analyze classifies every observation in the snapshot against the check
// battery and returns the aggregated report. The caches derived from history
// are built exactly once here, so every check in the cycle observes
// identical "known" state.
func (e *Engine) Analyze(ctx context.Context, snap domain.ScanSnapshot, history domain.HistoryWindow) domain.AnalysisReport {
	cyc := buildCycleContext(snap, history)

	report := domain.AnalysisReport{
		CycleID: uuid.NewString(),
	}

	for _, obs := range snap.Observations {
		if ctx.Err() != nil {
			break
		}

		s := cyc.newSubject(obs)
		var findings []domain.ThreatFinding
		for _, check := range e.checks {
			if f := e.runCheck(check, s, cyc); f != nil {
				findings = append(findings, *f)
			}
		}
		if len(findings) == 0 {
			continue
		}

		report.Assessments = append(report.Assessments, domain.NetworkAssessment{
			Observation: obs,
			Findings:    findings,
			Severity:    maxSeverity(findings),
		})
	}

	report.Summary = buildSummary(snap, report.Assessments)
	return report
}

// runCheck evaluates one check with panic isolation. A panicking check is an
// engine defect: it is logged and treated as "did not fire" for that check
// alone, so one bad heuristic cannot blank the rest of the cycle's findings.
func (e *Engine) runCheck(c Check, s subject, cyc *cycleContext) (finding *domain.ThreatFinding) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("check panicked, treating as not fired",
				"check", c.Name(), "bssid", s.BSSID, "panic", r)
			finding = nil
		}
	}()
	return c.Evaluate(s, cyc)
}

func maxSeverity(findings []domain.ThreatFinding) domain.Severity {
	max := domain.SeverityLow
	for _, f := range findings {
		if f.Severity > max {
			max = f.Severity
		}
	}
	return max
}

// severityWeights drive the 0-10 risk score.
var severityWeights = map[domain.Severity]float64{
	domain.SeverityLow:      2.0,
	domain.SeverityMedium:   4.5,
	domain.SeverityHigh:     7.0,
	domain.SeverityCritical: 9.5,
}

func buildSummary(snap domain.ScanSnapshot, assessments []domain.NetworkAssessment) domain.ReportSummary {
	summary := domain.ReportSummary{
		NetworkCount:  len(snap.Observations),
		ThreatCount:   len(assessments),
		BySeverity:    make(map[string]int),
		ByType:        make(map[domain.ThreatType]int),
		GeneratedAt:   time.Now().UTC(),
		SnapshotTaken: snap.Timestamp,
	}

	var totalWeight float64
	for _, a := range assessments {
		for _, f := range a.Findings {
			summary.FindingCount++
			summary.BySeverity[f.Severity.String()]++
			summary.ByType[f.Type]++
			totalWeight += severityWeights[f.Severity]
		}
	}

	summary.RiskScore = riskScore(totalWeight, summary.FindingCount, summary.ThreatCount)
	return summary
}

// riskScore condenses a cycle into a 0-10 score: average finding weight
// scaled by how widespread the threats are, capped at 10.
func riskScore(totalWeight float64, findings, threatenedNetworks int) float64 {
	if findings == 0 {
		return 0
	}

	average := totalWeight / float64(findings)

	// More threatened networks raise the score; caps at x1.5 for 10+.
	spreadFactor := 1.0 + math.Min(float64(threatenedNetworks)/20.0, 0.5)

	return math.Min(average*spreadFactor, 10.0)
}
