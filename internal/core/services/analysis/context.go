package analysis

import (
	"time"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// subject is one observation enriched with the per-cycle derived attributes
// every check needs. Deriving these once keeps the checks themselves free of
// repeated parsing.
type subject struct {
	domain.NetworkObservation

	class   domain.SecurityClass
	oui     string
	prefix4 string
	band    domain.WiFiBand
	known   bool // BSSID present anywhere in the history window
	laa     bool // locally-administered address bit set
}

// clonePeer is a current-snapshot sibling indexed for the near-clone check.
type clonePeer struct {
	bssid string
	band  domain.WiFiBand
	known bool
}

// ouiGroup aggregates the current snapshot per vendor prefix.
type ouiGroup struct {
	ssids     map[string]struct{}
	bssids    map[string]struct{}
	newBssids map[string]struct{} // bssids absent from knownBssids
	allKnown  bool
}

// cycleContext holds every lookup cache for one analysis cycle. It is built
// exactly once per cycle so that all checks observe identical "known" state,
// and is discarded when the cycle's findings have been emitted.
type cycleContext struct {
	snapshotAt time.Time

	// History-derived, O(history size) to build.
	knownBssids   map[string]struct{}
	ssidToBssids  map[string]map[string]struct{}
	securedSSIDs  map[string]struct{}             // SSIDs observed secured at least once
	lastSecurity  map[string]domain.SecurityClass // "ssid|bssid" -> most recent recorded class
	lastFrequency map[string]int                  // bssid -> most recent recorded frequency

	// Current-snapshot indexes.
	currentBySSID map[string]map[string]struct{}
	ouiGroups     map[string]*ouiGroup
	clonePeers    map[string][]clonePeer // "ssid|prefix4" -> peers
}

func historyKey(ssid, bssid string) string {
	return ssid + "|" + bssid
}

// buildCycleContext computes all caches for one cycle. History is walked
// oldest to newest so "last seen" entries end up holding the most recent
// recorded value.
func buildCycleContext(snap domain.ScanSnapshot, history domain.HistoryWindow) *cycleContext {
	cyc := &cycleContext{
		snapshotAt:    snap.Timestamp,
		knownBssids:   make(map[string]struct{}),
		ssidToBssids:  make(map[string]map[string]struct{}),
		securedSSIDs:  make(map[string]struct{}),
		lastSecurity:  make(map[string]domain.SecurityClass),
		lastFrequency: make(map[string]int),
		currentBySSID: make(map[string]map[string]struct{}),
		ouiGroups:     make(map[string]*ouiGroup),
		clonePeers:    make(map[string][]clonePeer),
	}

	for _, past := range history {
		for _, obs := range past.Observations {
			if obs.BSSID == "" {
				continue
			}
			cyc.knownBssids[obs.BSSID] = struct{}{}

			if obs.SSID != "" {
				set, ok := cyc.ssidToBssids[obs.SSID]
				if !ok {
					set = make(map[string]struct{})
					cyc.ssidToBssids[obs.SSID] = set
				}
				set[obs.BSSID] = struct{}{}
			}

			class := domain.ClassifySecurity(obs.Security)
			if class != domain.SecurityUnknown {
				cyc.lastSecurity[historyKey(obs.SSID, obs.BSSID)] = class
				if obs.SSID != "" && class.IsSecured() {
					cyc.securedSSIDs[obs.SSID] = struct{}{}
				}
			}

			if obs.Frequency > 0 {
				cyc.lastFrequency[obs.BSSID] = obs.Frequency
			}
		}
	}

	for _, obs := range snap.Observations {
		if obs.SSID != "" && obs.BSSID != "" {
			set, ok := cyc.currentBySSID[obs.SSID]
			if !ok {
				set = make(map[string]struct{})
				cyc.currentBySSID[obs.SSID] = set
			}
			set[obs.BSSID] = struct{}{}
		}

		oui := domain.ExtractOUI(obs.BSSID)
		if oui != domain.UnknownOUI {
			group, ok := cyc.ouiGroups[oui]
			if !ok {
				group = &ouiGroup{
					ssids:     make(map[string]struct{}),
					bssids:    make(map[string]struct{}),
					newBssids: make(map[string]struct{}),
				}
				cyc.ouiGroups[oui] = group
			}
			if obs.SSID != "" {
				group.ssids[obs.SSID] = struct{}{}
			}
			group.bssids[obs.BSSID] = struct{}{}
			if _, known := cyc.knownBssids[obs.BSSID]; !known {
				group.newBssids[obs.BSSID] = struct{}{}
			}
		}

		prefix := domain.ExtractPrefix4(obs.BSSID)
		if obs.SSID != "" && prefix != domain.UnknownOUI {
			_, known := cyc.knownBssids[obs.BSSID]
			key := historyKey(obs.SSID, prefix)
			cyc.clonePeers[key] = append(cyc.clonePeers[key], clonePeer{
				bssid: obs.BSSID,
				band:  obs.Band(),
				known: known,
			})
		}
	}

	for _, group := range cyc.ouiGroups {
		group.allKnown = len(group.newBssids) == 0
	}

	return cyc
}

// newSubject derives the per-observation attributes once for all checks.
func (c *cycleContext) newSubject(obs domain.NetworkObservation) subject {
	_, known := c.knownBssids[obs.BSSID]
	return subject{
		NetworkObservation: obs,
		class:              domain.ClassifySecurity(obs.Security),
		oui:                domain.ExtractOUI(obs.BSSID),
		prefix4:            domain.ExtractPrefix4(obs.BSSID),
		band:               obs.Band(),
		known:              known,
		laa:                domain.IsLocallyAdministeredBSSID(obs.BSSID),
	}
}
