package domain

// WiFiBand represents a typed string for frequency bands.
type WiFiBand string

const (
	Band24GHz   WiFiBand = "2.4GHz"
	Band5GHz    WiFiBand = "5GHz"
	Band6GHz    WiFiBand = "6GHz"
	BandUnknown WiFiBand = "unknown"
)

// BandForFrequency maps a center frequency in MHz to its coarse band.
// Frequencies outside the 802.11 allocations (including the 0 sentinel)
// map to BandUnknown.
func BandForFrequency(freq int) WiFiBand {
	switch {
	case freq >= 2412 && freq <= 2484:
		return Band24GHz
	case freq >= 5150 && freq <= 5895:
		return Band5GHz
	case freq >= 5955 && freq <= 7115:
		return Band6GHz
	default:
		return BandUnknown
	}
}

// FrequencyToChannel converts a WiFi center frequency (MHz) to its channel
// number, or 0 if the frequency is not a recognized 802.11 channel.
func FrequencyToChannel(freq int) int {
	switch {
	case freq >= 2412 && freq <= 2472:
		return (freq - 2407) / 5
	case freq == 2484:
		return 14
	case freq >= 5150 && freq <= 5895:
		return (freq - 5000) / 5
	case freq >= 5955 && freq <= 7115:
		return (freq - 5950) / 5
	default:
		return 0
	}
}
