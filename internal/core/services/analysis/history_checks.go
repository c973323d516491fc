package analysis

import (
	"fmt"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// SecurityChangeCheck flags a network whose open/secured classification
// flipped since its most recent historic sighting with a recorded security
// value. Downgrades to open are the classic prelude to credential capture.
type SecurityChangeCheck struct{}

func (c *SecurityChangeCheck) Name() string { return "SecurityChangeCheck" }

func (c *SecurityChangeCheck) Evaluate(s subject, cyc *cycleContext) *domain.ThreatFinding {
	if s.class == domain.SecurityUnknown {
		return nil
	}

	previous, ok := cyc.lastSecurity[historyKey(s.SSID, s.BSSID)]
	if !ok || previous.IsOpen() == s.class.IsOpen() {
		return nil
	}

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatSecurityChange, domain.SeverityHigh,
		"Network security classification changed since last sighting",
		fmt.Sprintf("was %s, now %s", previous, s.class))
	return &f
}

// EvilTwinCheck flags a previously-secured SSID reappearing open under a
// BSSID never seen for that SSID: the textbook evil-twin pattern.
type EvilTwinCheck struct{}

func (c *EvilTwinCheck) Name() string { return "EvilTwinCheck" }

func (c *EvilTwinCheck) Evaluate(s subject, cyc *cycleContext) *domain.ThreatFinding {
	if s.SSID == "" || !s.class.IsOpen() {
		return nil
	}

	if _, seenSecured := cyc.securedSSIDs[s.SSID]; !seenSecured {
		return nil
	}
	if _, knownForSSID := cyc.ssidToBssids[s.SSID][s.BSSID]; knownForSSID {
		return nil
	}

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatEvilTwin, domain.SeverityCritical,
		fmt.Sprintf("Open impersonation of previously secured SSID %q", s.SSID),
		fmt.Sprintf("BSSID %s never seen for this SSID before", s.BSSID))
	return &f
}

// MACSpoofingCheck flags brand-new transmitters using locally-administered
// addresses. Vendor-assigned MACs and already-established recurring access
// points are excluded, as is the first cycle (no baseline yet).
type MACSpoofingCheck struct{}

func (c *MACSpoofingCheck) Name() string { return "MACSpoofingCheck" }

func (c *MACSpoofingCheck) Evaluate(s subject, cyc *cycleContext) *domain.ThreatFinding {
	if !s.laa || s.known || len(cyc.knownBssids) == 0 {
		return nil
	}

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatMACSpoofingSuspected, domain.SeverityMedium,
		"New access point with locally-administered (software-set) MAC",
		fmt.Sprintf("LAA bit set on %s, not seen in history", s.BSSID))
	return &f
}

// SignalStrengthCheck flags never-seen transmitters received at unusually
// high power, consistent with a rogue device placed next to the sensor.
type SignalStrengthCheck struct{}

func (c *SignalStrengthCheck) Name() string { return "SignalStrengthCheck" }

func (c *SignalStrengthCheck) Evaluate(s subject, cyc *cycleContext) *domain.ThreatFinding {
	if len(cyc.knownBssids) == 0 || s.known || !s.HasRSSI() {
		return nil
	}
	if s.RSSI < strongSignalThresholdDBm {
		return nil
	}

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatSuspiciousSignal, domain.SeverityMedium,
		"Unusually strong signal from a never-seen transmitter",
		fmt.Sprintf("%d dBm from new BSSID %s", s.RSSI, s.BSSID))
	return &f
}

// ChannelShiftCheck flags a BSSID that moved to a different frequency band
// since its most recent sighting with a recorded frequency.
type ChannelShiftCheck struct{}

func (c *ChannelShiftCheck) Name() string { return "ChannelShiftCheck" }

func (c *ChannelShiftCheck) Evaluate(s subject, cyc *cycleContext) *domain.ThreatFinding {
	if s.BSSID == "" || s.band == domain.BandUnknown {
		return nil
	}

	previousFreq, ok := cyc.lastFrequency[s.BSSID]
	if !ok {
		return nil
	}
	previousBand := domain.BandForFrequency(previousFreq)
	if previousBand == domain.BandUnknown || previousBand == s.band {
		return nil
	}

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatChannelShift, domain.SeverityMedium,
		"Access point moved to a different frequency band",
		fmt.Sprintf("was %s (%d MHz), now %s (%d MHz)", previousBand, previousFreq, s.band, s.Frequency))
	return &f
}
