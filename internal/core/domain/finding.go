package domain

import (
	"time"

	"github.com/google/uuid"
)

// ThreatType identifies a single heuristic in the detection battery.
type ThreatType string

const (
	ThreatOpenNetwork              ThreatType = "OPEN_NETWORK"
	ThreatSuspiciousSSID           ThreatType = "SUSPICIOUS_SSID"
	ThreatWPSVulnerable            ThreatType = "WPS_VULNERABLE"
	ThreatMultipleBSSIDs           ThreatType = "MULTIPLE_BSSIDS"
	ThreatMultiSSIDSameOUI         ThreatType = "MULTI_SSID_SAME_OUI"
	ThreatBeaconFlood              ThreatType = "BEACON_FLOOD"
	ThreatBSSIDNearClone           ThreatType = "BSSID_NEAR_CLONE"
	ThreatInconsistentCapabilities ThreatType = "INCONSISTENT_CAPABILITIES"
	ThreatSecurityChange           ThreatType = "SECURITY_CHANGE"
	ThreatEvilTwin                 ThreatType = "EVIL_TWIN"
	ThreatMACSpoofingSuspected     ThreatType = "MAC_SPOOFING_SUSPECTED"
	ThreatSuspiciousSignal         ThreatType = "SUSPICIOUS_SIGNAL_STRENGTH"
	ThreatChannelShift             ThreatType = "CHANNEL_SHIFT"
)

// Severity represents the criticality of a finding. The integer backing
// gives the total order Low < Medium < High < Critical used for aggregation.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON encodes the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a lowercase severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	name := string(data)
	if len(name) >= 2 && name[0] == '"' {
		name = name[1 : len(name)-1]
	}
	for sev, n := range severityNames {
		if n == name {
			*s = sev
			return nil
		}
	}
	*s = SeverityLow
	return nil
}

// ThreatFinding records one heuristic firing against one observation.
type ThreatFinding struct {
	ID          string     `json:"id"`
	SSID        string     `json:"ssid"`
	BSSID       string     `json:"bssid"`
	Type        ThreatType `json:"type"`
	Severity    Severity   `json:"severity"`
	Description string     `json:"description"`
	Evidence    []string   `json:"evidence,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}

// NewThreatFinding builds a finding for the given observation.
func NewThreatFinding(obs NetworkObservation, t ThreatType, severity Severity, description string, evidence ...string) ThreatFinding {
	return ThreatFinding{
		ID:          uuid.NewString(),
		SSID:        obs.SSID,
		BSSID:       obs.BSSID,
		Type:        t,
		Severity:    severity,
		Description: description,
		Evidence:    evidence,
		Timestamp:   time.Now().UTC(),
	}
}

// NetworkAssessment groups the findings for one observation. Findings keep
// the order the checks fired in; consumers can surface either the top reason
// or the full list.
type NetworkAssessment struct {
	Observation NetworkObservation `json:"observation"`
	Findings    []ThreatFinding    `json:"findings"`
	Severity    Severity           `json:"severity"` // Max severity among Findings
}

// ReportSummary aggregates one analysis cycle for dashboards and exports.
type ReportSummary struct {
	NetworkCount  int                `json:"network_count"`
	ThreatCount   int                `json:"threat_count"`
	FindingCount  int                `json:"finding_count"`
	BySeverity    map[string]int     `json:"by_severity"`
	ByType        map[ThreatType]int `json:"by_type"`
	RiskScore     float64            `json:"risk_score"` // 0-10
	GeneratedAt   time.Time          `json:"generated_at"`
	SnapshotTaken time.Time          `json:"snapshot_taken"`
}

// AnalysisReport is the output of one engine run over one snapshot.
type AnalysisReport struct {
	CycleID     string              `json:"cycle_id"`
	Assessments []NetworkAssessment `json:"assessments"` // Only networks with >=1 finding
	Summary     ReportSummary       `json:"summary"`
}

// Findings flattens all assessments into a single ordered finding list.
func (r AnalysisReport) Findings() []ThreatFinding {
	var all []ThreatFinding
	for _, a := range r.Assessments {
		all = append(all, a.Findings...)
	}
	return all
}
