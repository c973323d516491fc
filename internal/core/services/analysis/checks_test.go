package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// evaluate derives the subject the same way the engine does and runs a single
// check against it.
func evaluate(c Check, obs domain.NetworkObservation, snap domain.ScanSnapshot, history domain.HistoryWindow) *domain.ThreatFinding {
	cyc := buildCycleContext(snap, history)
	return c.Evaluate(cyc.newSubject(obs), cyc)
}

func TestOpenNetworkCheck(t *testing.T) {
	check := &OpenNetworkCheck{}

	t.Run("fires on open", func(t *testing.T) {
		obs := ap("Cafe", "AA:BB:CC:00:00:01", "OPEN")
		f := evaluate(check, obs, snapshotOf(obs), nil)
		require.NotNil(t, f)
		assert.Equal(t, domain.ThreatOpenNetwork, f.Type)
		assert.Equal(t, domain.SeverityLow, f.Severity)
	})

	t.Run("quiet on secured", func(t *testing.T) {
		obs := ap("Cafe", "AA:BB:CC:00:00:01", "WPA2-PSK")
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), nil))
	})

	t.Run("quiet when security is unrecorded", func(t *testing.T) {
		obs := ap("Cafe", "AA:BB:CC:00:00:01", "")
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), nil))
	})
}

func TestSuspiciousSSIDCheck(t *testing.T) {
	check := &SuspiciousSSIDCheck{}

	cases := []struct {
		ssid  string
		fires bool
	}{
		{"Free Public WiFi", true},
		{"PINEAPPLE_AP", true},
		{"hotel-lobby", true},
		{"HomeNetwork", false},
		{"lab-test-rig", false}, // "test" is deliberately not a keyword
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.ssid, func(t *testing.T) {
			obs := ap(tc.ssid, "AA:BB:CC:00:00:01", "WPA2")
			f := evaluate(check, obs, snapshotOf(obs), nil)
			if tc.fires {
				require.NotNil(t, f)
				assert.Equal(t, domain.ThreatSuspiciousSSID, f.Type)
			} else {
				assert.Nil(t, f)
			}
		})
	}
}

func TestWPSCheck(t *testing.T) {
	check := &WPSCheck{}

	withWPS := ap("Home", "AA:BB:CC:00:00:01", "WPA2")
	withWPS.WPS = true
	f := evaluate(check, withWPS, snapshotOf(withWPS), nil)
	require.NotNil(t, f)
	assert.Equal(t, domain.ThreatWPSVulnerable, f.Type)

	without := ap("Home", "AA:BB:CC:00:00:01", "WPA2")
	assert.Nil(t, evaluate(check, without, snapshotOf(without), nil))
}

func TestSecurityChangeCheck(t *testing.T) {
	check := &SecurityChangeCheck{}
	obs := ap("Home", "AA:BB:CC:00:00:01", "OPEN")

	t.Run("fires on downgrade to open", func(t *testing.T) {
		history := historyOf(snapshotOf(ap("Home", "AA:BB:CC:00:00:01", "WPA2")))
		f := evaluate(check, obs, snapshotOf(obs), history)
		require.NotNil(t, f)
		assert.Equal(t, domain.ThreatSecurityChange, f.Type)
		assert.Equal(t, domain.SeverityHigh, f.Severity)
	})

	t.Run("fires on upgrade from open", func(t *testing.T) {
		secured := ap("Home", "AA:BB:CC:00:00:01", "WPA2")
		history := historyOf(snapshotOf(ap("Home", "AA:BB:CC:00:00:01", "OPEN")))
		f := evaluate(check, secured, snapshotOf(secured), history)
		require.NotNil(t, f)
	})

	t.Run("quiet on secured-to-secured change", func(t *testing.T) {
		wpa3 := ap("Home", "AA:BB:CC:00:00:01", "WPA3-SAE")
		history := historyOf(snapshotOf(ap("Home", "AA:BB:CC:00:00:01", "WPA2")))
		assert.Nil(t, evaluate(check, wpa3, snapshotOf(wpa3), history))
	})

	t.Run("uses most recent recorded sighting", func(t *testing.T) {
		history := historyOf(
			snapshotOf(ap("Home", "AA:BB:CC:00:00:01", "WPA2")),
			snapshotOf(ap("Home", "AA:BB:CC:00:00:01", "OPEN")),
		)
		// Latest recorded state is already open, so open now is no change.
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), history))
	})

	t.Run("unrecorded history security is skipped", func(t *testing.T) {
		history := historyOf(
			snapshotOf(ap("Home", "AA:BB:CC:00:00:01", "WPA2")),
			snapshotOf(ap("Home", "AA:BB:CC:00:00:01", "")),
		)
		// The empty descriptor does not overwrite the WPA2 sighting.
		f := evaluate(check, obs, snapshotOf(obs), history)
		require.NotNil(t, f)
	})

	t.Run("quiet without history", func(t *testing.T) {
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), nil))
	})

	t.Run("quiet when current security is unrecorded", func(t *testing.T) {
		blank := ap("Home", "AA:BB:CC:00:00:01", "")
		history := historyOf(snapshotOf(ap("Home", "AA:BB:CC:00:00:01", "WPA2")))
		assert.Nil(t, evaluate(check, blank, snapshotOf(blank), history))
	})
}

func TestEvilTwinCheck(t *testing.T) {
	check := &EvilTwinCheck{}
	history := historyOf(snapshotOf(ap("Coffee", "AA:BB:CC:00:00:01", "WPA2")))

	t.Run("fires on open newcomer for a secured SSID", func(t *testing.T) {
		rogue := ap("Coffee", "DE:AD:BE:EF:00:01", "OPEN")
		f := evaluate(check, rogue, snapshotOf(rogue), history)
		require.NotNil(t, f)
		assert.Equal(t, domain.SeverityCritical, f.Severity)
	})

	t.Run("quiet when the BSSID already served this SSID", func(t *testing.T) {
		downgraded := ap("Coffee", "AA:BB:CC:00:00:01", "OPEN")
		// A known radio going open is a security change, not a twin.
		assert.Nil(t, evaluate(check, downgraded, snapshotOf(downgraded), history))
	})

	t.Run("quiet when the SSID was never secured", func(t *testing.T) {
		openHistory := historyOf(snapshotOf(ap("Cafe", "AA:BB:CC:00:00:01", "OPEN")))
		obs := ap("Cafe", "DE:AD:BE:EF:00:01", "OPEN")
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), openHistory))
	})

	t.Run("quiet on secured observation", func(t *testing.T) {
		obs := ap("Coffee", "DE:AD:BE:EF:00:01", "WPA2")
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), history))
	})
}

func TestChannelShiftCheck(t *testing.T) {
	check := &ChannelShiftCheck{}

	at := func(freq int) domain.NetworkObservation {
		obs := ap("Home", "AA:BB:CC:00:00:01", "WPA2")
		obs.Frequency = freq
		return obs
	}

	t.Run("fires on band change", func(t *testing.T) {
		history := historyOf(snapshotOf(at(2412)))
		f := evaluate(check, at(5180), snapshotOf(at(5180)), history)
		require.NotNil(t, f)
		assert.Equal(t, domain.ThreatChannelShift, f.Type)
	})

	t.Run("quiet on same-band channel change", func(t *testing.T) {
		history := historyOf(snapshotOf(at(2412)))
		assert.Nil(t, evaluate(check, at(2437), snapshotOf(at(2437)), history))
	})

	t.Run("quiet when either frequency is unknown", func(t *testing.T) {
		history := historyOf(snapshotOf(at(0)))
		assert.Nil(t, evaluate(check, at(5180), snapshotOf(at(5180)), history))

		history = historyOf(snapshotOf(at(2412)))
		assert.Nil(t, evaluate(check, at(0), snapshotOf(at(0)), history))
	})
}

func TestSignalStrengthCheck(t *testing.T) {
	check := &SignalStrengthCheck{}
	history := historyOf(snapshotOf(ap("Known", "00:17:F2:00:00:01", "WPA2")))

	strong := func(bssid string, rssi int) domain.NetworkObservation {
		obs := ap("Newcomer", bssid, "WPA2")
		obs.RSSI = rssi
		return obs
	}

	t.Run("fires on strong unknown transmitter", func(t *testing.T) {
		obs := strong("DE:AD:BE:EF:00:01", -35)
		f := evaluate(check, obs, snapshotOf(obs), history)
		require.NotNil(t, f)
		assert.Equal(t, domain.ThreatSuspiciousSignal, f.Type)
	})

	t.Run("fires exactly at threshold", func(t *testing.T) {
		obs := strong("DE:AD:BE:EF:00:01", -40)
		require.NotNil(t, evaluate(check, obs, snapshotOf(obs), history))
	})

	t.Run("quiet below threshold", func(t *testing.T) {
		obs := strong("DE:AD:BE:EF:00:01", -41)
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), history))
	})

	t.Run("quiet for known transmitter", func(t *testing.T) {
		obs := strong("00:17:F2:00:00:01", -35)
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), history))
	})

	t.Run("quiet without signal data", func(t *testing.T) {
		obs := strong("DE:AD:BE:EF:00:01", domain.RSSIUnknown)
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), history))
	})

	t.Run("quiet without baseline", func(t *testing.T) {
		obs := strong("DE:AD:BE:EF:00:01", -35)
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), nil))
	})
}

func TestNearCloneCheck(t *testing.T) {
	check := &NearCloneCheck{}

	at := func(bssid string, freq int) domain.NetworkObservation {
		obs := ap("Office", bssid, "WPA2")
		obs.Frequency = freq
		return obs
	}

	t.Run("fires on same-band shared prefix", func(t *testing.T) {
		a := at("AA:BB:CC:DD:00:01", 2412)
		b := at("AA:BB:CC:DD:00:02", 2437)
		f := evaluate(check, a, snapshotOf(a, b), nil)
		require.NotNil(t, f)
		assert.Equal(t, domain.ThreatBSSIDNearClone, f.Type)
	})

	t.Run("fires when a new clone appears beside a known peer", func(t *testing.T) {
		known := at("AA:BB:CC:DD:00:01", 0)
		newcomer := at("AA:BB:CC:DD:00:02", 0)
		history := historyOf(snapshotOf(known))
		require.NotNil(t, evaluate(check, newcomer, snapshotOf(known, newcomer), history))
	})

	t.Run("quiet across bands with no history", func(t *testing.T) {
		a := at("AA:BB:CC:DD:00:01", 2412)
		b := at("AA:BB:CC:DD:00:02", 5180)
		assert.Nil(t, evaluate(check, a, snapshotOf(a, b), nil))
	})

	t.Run("quiet on different prefix", func(t *testing.T) {
		a := at("AA:BB:CC:DD:00:01", 2412)
		b := at("AA:BB:CC:EE:00:02", 2437)
		assert.Nil(t, evaluate(check, a, snapshotOf(a, b), nil))
	})

	t.Run("quiet on different SSID", func(t *testing.T) {
		a := at("AA:BB:CC:DD:00:01", 2412)
		b := at("AA:BB:CC:DD:00:02", 2437)
		b.SSID = "Other"
		assert.Nil(t, evaluate(check, a, snapshotOf(a, b), nil))
	})
}

func TestInconsistentCapabilitiesCheck(t *testing.T) {
	check := &InconsistentCapabilitiesCheck{}

	at6GHz := func(caps string) domain.NetworkObservation {
		obs := ap("Six", "AA:BB:CC:00:00:01", "WPA3-SAE")
		obs.Frequency = 5955
		obs.Capabilities = caps
		return obs
	}

	t.Run("fires on pre-ax generation at 6 GHz", func(t *testing.T) {
		obs := at6GHz("[VHT][WPA3-SAE]")
		f := evaluate(check, obs, snapshotOf(obs), nil)
		require.NotNil(t, f)
		assert.Equal(t, domain.ThreatInconsistentCapabilities, f.Type)
	})

	t.Run("quiet on ax or be at 6 GHz", func(t *testing.T) {
		for _, caps := range []string{"[HE][WPA3-SAE]", "[EHT][WPA3-SAE]"} {
			obs := at6GHz(caps)
			assert.Nil(t, evaluate(check, obs, snapshotOf(obs), nil), caps)
		}
	})

	t.Run("quiet off the 6 GHz band", func(t *testing.T) {
		obs := ap("Legacy", "AA:BB:CC:00:00:01", "WPA2")
		obs.Frequency = 2412
		obs.Capabilities = "[HT]"
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), nil))
	})

	t.Run("quiet without a descriptor", func(t *testing.T) {
		obs := at6GHz("")
		assert.Nil(t, evaluate(check, obs, snapshotOf(obs), nil))
	})
}

func TestWifiGeneration(t *testing.T) {
	cases := map[string]string{
		"[EHT]":            "be",
		"[HE]":             "ax",
		"[VHT][HT]":        "ac",
		"[HT]":             "n",
		"[802.11G]":        "g",
		"[WPA2-PSK][ESS]":  "",
		"11ac capable":     "ac",
		"IEEE 802.11be AP": "be",
	}
	for caps, want := range cases {
		assert.Equal(t, want, wifiGeneration(caps), caps)
	}
}
