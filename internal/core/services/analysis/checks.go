package analysis

import (
	"fmt"
	"strings"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// Detection thresholds.
const (
	// multiSSIDThreshold is the distinct-SSID count per OUI group above
	// which a karma/bait deployment is suspected.
	multiSSIDThreshold = 5

	// beaconFloodThreshold is the number of never-seen BSSIDs from one OUI
	// group that indicates a beacon flood.
	beaconFloodThreshold = 4

	// strongSignalThresholdDBm flags transmitters that are unusually close
	// to the sensor. -40 dBm typically means within a few meters.
	strongSignalThresholdDBm = -40
)

// Check is a single heuristic in the detection battery. Evaluate must be
// total over its input domain: malformed or missing data degrades to a nil
// result, never an error or panic.
type Check interface {
	Name() string
	Evaluate(s subject, cyc *cycleContext) *domain.ThreatFinding
}

// suspiciousKeywords are SSID fragments commonly used by rogue-bait access
// points. "test" and "probe" are deliberately excluded as too noisy.
var suspiciousKeywords = []string{
	"free", "guest", "public", "open", "hack", "evil", "pineapple",
	"starbucks", "airport", "hotel", "setup", "karma", "rogue",
	"pentest", "kali",
}

// OpenNetworkCheck flags networks broadcasting without encryption.
type OpenNetworkCheck struct{}

func (c *OpenNetworkCheck) Name() string { return "OpenNetworkCheck" }

func (c *OpenNetworkCheck) Evaluate(s subject, _ *cycleContext) *domain.ThreatFinding {
	if !s.class.IsOpen() {
		return nil
	}

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatOpenNetwork, domain.SeverityLow,
		"Network has no encryption; all traffic is visible",
		fmt.Sprintf("security descriptor %q", s.Security))
	return &f
}

// SuspiciousSSIDCheck flags SSIDs matching known bait/attack-tool naming.
type SuspiciousSSIDCheck struct{}

func (c *SuspiciousSSIDCheck) Name() string { return "SuspiciousSSIDCheck" }

func (c *SuspiciousSSIDCheck) Evaluate(s subject, _ *cycleContext) *domain.ThreatFinding {
	if s.SSID == "" {
		return nil
	}

	lowered := strings.ToLower(s.SSID)
	for _, keyword := range suspiciousKeywords {
		if strings.Contains(lowered, keyword) {
			f := domain.NewThreatFinding(s.NetworkObservation,
				domain.ThreatSuspiciousSSID, domain.SeverityMedium,
				"SSID matches common bait or attack-tool naming",
				fmt.Sprintf("keyword %q in SSID %q", keyword, s.SSID))
			return &f
		}
	}
	return nil
}

// WPSCheck flags access points advertising WPS, a pairing mechanism with
// known brute-force weaknesses.
type WPSCheck struct{}

func (c *WPSCheck) Name() string { return "WPSCheck" }

func (c *WPSCheck) Evaluate(s subject, _ *cycleContext) *domain.ThreatFinding {
	if !s.WPS {
		return nil
	}

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatWPSVulnerable, domain.SeverityMedium,
		"WPS advertised; PIN mode is brute-forceable",
		"WPS flagged in capability descriptor")
	return &f
}
