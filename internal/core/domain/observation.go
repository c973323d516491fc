package domain

import "time"

// NetworkObservation is a single access point sighting as reported by a
// scanning adapter. Instances are immutable once handed to the engine.
type NetworkObservation struct {
	SSID         string `json:"ssid"`                   // May be empty (hidden network)
	BSSID        string `json:"bssid"`                  // Colon-hex MAC, possibly malformed
	Security     string `json:"security,omitempty"`     // Free-text descriptor, e.g. "WPA2-PSK-CCMP"
	RSSI         int    `json:"rssi,omitempty"`         // dBm; 0 means not recorded
	Frequency    int    `json:"freq,omitempty"`         // MHz; 0 means unknown
	Capabilities string `json:"capabilities,omitempty"` // Opaque capability descriptor, e.g. "[WPA2][HT][WPS]"
	WPS          bool   `json:"wps"`                    // WPS advertised
}

// RSSIUnknown is the sentinel for an absent signal strength reading.
const RSSIUnknown = 0

// HasRSSI reports whether a signal strength was recorded for this sighting.
func (o NetworkObservation) HasRSSI() bool {
	return o.RSSI != RSSIUnknown
}

// Band returns the frequency band this observation was made on.
func (o NetworkObservation) Band() WiFiBand {
	return BandForFrequency(o.Frequency)
}

// ScanSnapshot is the full set of observations from one scan pass.
// Observation order is preserved for deterministic output; it carries no
// semantic meaning.
type ScanSnapshot struct {
	Timestamp    time.Time            `json:"timestamp"`
	Observations []NetworkObservation `json:"observations"`
}

// HistoryWindow is a bounded, chronologically ordered (oldest first) sequence
// of prior snapshots. It is supplied read-only by a history provider; the
// engine never mutates it.
type HistoryWindow []ScanSnapshot
