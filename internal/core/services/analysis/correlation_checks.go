package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// MultipleBSSIDsCheck flags SSIDs advertised by more than one radio across
// the current snapshot and history. Duplicate SSIDs are normal for roaming
// deployments but are also the raw material of every evil-twin setup, so
// this fires independent of security state.
type MultipleBSSIDsCheck struct{}

func (c *MultipleBSSIDsCheck) Name() string { return "MultipleBSSIDsCheck" }

func (c *MultipleBSSIDsCheck) Evaluate(s subject, cyc *cycleContext) *domain.ThreatFinding {
	if s.SSID == "" || s.BSSID == "" {
		return nil
	}

	union := make(map[string]struct{})
	for bssid := range cyc.currentBySSID[s.SSID] {
		union[bssid] = struct{}{}
	}
	for bssid := range cyc.ssidToBssids[s.SSID] {
		union[bssid] = struct{}{}
	}
	if len(union) <= 1 {
		return nil
	}

	bssids := make([]string, 0, len(union))
	for bssid := range union {
		bssids = append(bssids, bssid)
	}
	sort.Strings(bssids)

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatMultipleBSSIDs, domain.SeverityMedium,
		fmt.Sprintf("SSID %q advertised by %d distinct BSSIDs", s.SSID, len(bssids)),
		strings.Join(bssids, ", "))
	return &f
}

// MultiSSIDSameOUICheck flags one vendor radio broadcasting many distinct
// SSIDs, the signature of a karma/bait device. Established multi-SSID
// enterprise hardware is suppressed: the check stays quiet when every BSSID
// in the group is already known from history.
type MultiSSIDSameOUICheck struct{}

func (c *MultiSSIDSameOUICheck) Name() string { return "MultiSSIDSameOUICheck" }

func (c *MultiSSIDSameOUICheck) Evaluate(s subject, cyc *cycleContext) *domain.ThreatFinding {
	if s.oui == domain.UnknownOUI {
		return nil
	}

	group, ok := cyc.ouiGroups[s.oui]
	if !ok || len(group.ssids) < multiSSIDThreshold || group.allKnown {
		return nil
	}

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatMultiSSIDSameOUI, domain.SeverityHigh,
		"Single vendor prefix broadcasting many distinct SSIDs",
		fmt.Sprintf("OUI %s carries %d SSIDs across %d BSSIDs", s.oui, len(group.ssids), len(group.bssids)))
	return &f
}

// BeaconFloodCheck flags a burst of brand-new virtual access points from one
// radio. It needs a baseline: with an empty history every BSSID is "new" and
// the check would fire on the first cycle of any deployment.
type BeaconFloodCheck struct{}

func (c *BeaconFloodCheck) Name() string { return "BeaconFloodCheck" }

func (c *BeaconFloodCheck) Evaluate(s subject, cyc *cycleContext) *domain.ThreatFinding {
	if len(cyc.knownBssids) == 0 || s.oui == domain.UnknownOUI {
		return nil
	}

	group, ok := cyc.ouiGroups[s.oui]
	if !ok || len(group.newBssids) < beaconFloodThreshold {
		return nil
	}

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatBeaconFlood, domain.SeverityHigh,
		"Many previously unseen access points from one radio at once",
		fmt.Sprintf("%d new BSSIDs under OUI %s this cycle", len(group.newBssids), s.oui))
	return &f
}

// NearCloneCheck flags a BSSID differing only in the last octets from a
// same-SSID peer. Same band means a co-channel impersonator; a known peer
// with a new clone means a rogue slipped in next to established hardware.
type NearCloneCheck struct{}

func (c *NearCloneCheck) Name() string { return "NearCloneCheck" }

func (c *NearCloneCheck) Evaluate(s subject, cyc *cycleContext) *domain.ThreatFinding {
	if s.SSID == "" || s.prefix4 == domain.UnknownOUI {
		return nil
	}

	for _, peer := range cyc.clonePeers[historyKey(s.SSID, s.prefix4)] {
		if peer.bssid == s.BSSID {
			continue
		}

		sameBand := s.band != domain.BandUnknown && peer.band == s.band
		crossBandInsertion := peer.known && !s.known
		if !sameBand && !crossBandInsertion {
			continue
		}

		reason := "same band"
		if !sameBand {
			reason = "new BSSID beside established peer"
		}
		f := domain.NewThreatFinding(s.NetworkObservation,
			domain.ThreatBSSIDNearClone, domain.SeverityHigh,
			fmt.Sprintf("BSSID is a near-clone of %s for SSID %q", peer.bssid, s.SSID),
			fmt.Sprintf("shared prefix %s, %s", s.prefix4, reason))
		return &f
	}
	return nil
}

// InconsistentCapabilitiesCheck flags capability descriptors advertising a
// Wi-Fi generation physically impossible on the reported band. Capability
// data is platform dependent; the check is best effort and stays silent
// whenever the descriptor is absent or unrecognized.
type InconsistentCapabilitiesCheck struct{}

func (c *InconsistentCapabilitiesCheck) Name() string { return "InconsistentCapabilitiesCheck" }

// wifiGeneration extracts a coarse 802.11 generation token from a capability
// descriptor, or "" when none is recognized.
func wifiGeneration(capabilities string) string {
	upper := strings.ToUpper(capabilities)
	switch {
	case strings.Contains(upper, "11BE") || strings.Contains(upper, "EHT"):
		return "be"
	case strings.Contains(upper, "11AX") || strings.Contains(upper, "HE"):
		return "ax"
	case strings.Contains(upper, "11AC") || strings.Contains(upper, "VHT"):
		return "ac"
	case strings.Contains(upper, "11N") || strings.Contains(upper, "HT"):
		return "n"
	case strings.Contains(upper, "11G"):
		return "g"
	case strings.Contains(upper, "11B"):
		return "b"
	default:
		return ""
	}
}

func (c *InconsistentCapabilitiesCheck) Evaluate(s subject, _ *cycleContext) *domain.ThreatFinding {
	if s.Capabilities == "" || s.band != domain.Band6GHz {
		return nil
	}

	generation := wifiGeneration(s.Capabilities)
	switch generation {
	case "", "ax", "be":
		return nil
	}

	f := domain.NewThreatFinding(s.NetworkObservation,
		domain.ThreatInconsistentCapabilities, domain.SeverityMedium,
		"Advertised Wi-Fi generation cannot operate on the 6 GHz band",
		fmt.Sprintf("802.11%s capability at %d MHz", generation, s.Frequency))
	return &f
}
