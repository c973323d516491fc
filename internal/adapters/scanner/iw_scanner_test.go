package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScan = `BSS aa:bb:cc:dd:ee:ff(on wlan0) -- associated
	TSF: 1234567890 usec (0d, 00:20:34)
	freq: 2412
	beacon interval: 100 TUs
	capability: ESS Privacy ShortSlotTime (0x0411)
	signal: -45.00 dBm
	SSID: Office
	RSN:	 * Version: 1
		 * Group cipher: CCMP
		 * Pairwise ciphers: CCMP
		 * Authentication suites: PSK
	WPS:	 * Version: 1.0
	HT capabilities:
		Capabilities: 0x11ee
BSS 02:00:de:ad:be:01(on wlan0)
	freq: 5955.0
	capability: ESS (0x0401)
	signal: -61.50 dBm
	SSID: Lounge
	HE capabilities:
		HE MAC Capabilities (0x0001):
BSS 00:17:f2:00:00:09(on wlan0)
	freq: 5180
	capability: ESS Privacy (0x0411)
	signal: -70.00 dBm
	SSID: Secure6
	RSN:	 * Version: 1
		 * Group cipher: CCMP
		 * Authentication suites: SAE
	VHT capabilities:
		VHT Capabilities (0x338001b2):
`

func TestParseScanOutput(t *testing.T) {
	observations := parseScanOutput([]byte(sampleScan))
	require.Len(t, observations, 3)

	office := observations[0]
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", office.BSSID)
	assert.Equal(t, "Office", office.SSID)
	assert.Equal(t, 2412, office.Frequency)
	assert.Equal(t, -45, office.RSSI)
	assert.Equal(t, "WPA2-PSK", office.Security)
	assert.True(t, office.WPS)
	assert.Equal(t, "[HT][WPA2-PSK][WPS]", office.Capabilities)

	lounge := observations[1]
	assert.Equal(t, "02:00:DE:AD:BE:01", lounge.BSSID)
	assert.Equal(t, 5955, lounge.Frequency, "fractional 6 GHz frequencies must truncate")
	assert.Equal(t, -61, lounge.RSSI)
	assert.Equal(t, "OPEN", lounge.Security)
	assert.False(t, lounge.WPS)
	assert.Equal(t, "[HE][OPEN]", lounge.Capabilities)

	secure := observations[2]
	assert.Equal(t, "00:17:F2:00:00:09", secure.BSSID)
	assert.Equal(t, "WPA3-SAE", secure.Security, "RSN with SAE suites is WPA3")
	assert.Equal(t, "[VHT][WPA3-SAE]", secure.Capabilities)
}

func TestParseScanOutput_PrivacyWithoutRSNIsWEP(t *testing.T) {
	const wep = `BSS 00:11:22:33:44:55(on wlan0)
	freq: 2437
	capability: ESS Privacy (0x0411)
	signal: -80.00 dBm
	SSID: Legacy
`
	observations := parseScanOutput([]byte(wep))
	require.Len(t, observations, 1)
	assert.Equal(t, "WEP", observations[0].Security)
	assert.Equal(t, 2437, observations[0].Frequency)
}

func TestParseScanOutput_Empty(t *testing.T) {
	assert.Empty(t, parseScanOutput(nil))
	assert.Empty(t, parseScanOutput([]byte("command failed: Network is down (-100)\n")))
}
