package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

func TestExportThreatReport(t *testing.T) {
	report := domain.AnalysisReport{
		CycleID: "cycle-1",
		Assessments: []domain.NetworkAssessment{
			{
				Observation: domain.NetworkObservation{SSID: "Coffee", BSSID: "AA:BB:CC:00:00:02"},
				Findings: []domain.ThreatFinding{
					{
						SSID:     "Coffee",
						BSSID:    "AA:BB:CC:00:00:02",
						Type:     domain.ThreatEvilTwin,
						Severity: domain.SeverityCritical,
					},
				},
				Severity: domain.SeverityCritical,
			},
		},
		Summary: domain.ReportSummary{
			NetworkCount: 5,
			ThreatCount:  1,
			FindingCount: 1,
			BySeverity:   map[string]int{"critical": 1},
			RiskScore:    9.5,
			GeneratedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	pdf, err := NewPDFExporter().ExportThreatReport(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Greater(t, len(pdf), 1000)
}

func TestExportThreatReport_EmptyReport(t *testing.T) {
	pdf, err := NewPDFExporter().ExportThreatReport(domain.AnalysisReport{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "a-much-lo~", truncate("a-much-longer-name", 10))
}
