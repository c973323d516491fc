package scanner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// Common SSIDs for realistic mock data
var mockSSIDs = []string{
	"HomeNetwork", "NETGEAR-5G", "TP-Link_2.4GHz", "Linksys",
	"ATT-WiFi", "Xfinity", "Office-Network", "MyWiFi",
	"Home-2.4G", "Apartment_5G", "CoffeeShop", "Library-WiFi",
}

// Vendor OUI prefixes (first 3 bytes of MAC)
var mockOUIs = []string{
	"00:17:F2", // Apple
	"00:12:FB", // Samsung
	"00:1E:BD", // Cisco
	"50:C7:BF", // TP-Link
	"A0:63:91", // Netgear
	"00:14:BF", // Linksys
	"F4:F5:D8", // Google
	"00:1F:C6", // Asus
}

var mockSecurity = []string{"WPA2-PSK", "WPA2-PSK", "WPA3-SAE", "WPA2-PSK", "WEP", "OPEN"}

var mockFrequencies = []int{2412, 2437, 2462, 5180, 5220, 5745, 5785}

// MockScanner simulates a neighborhood of access points. The population is
// stable across snapshots so history-aware heuristics have something to
// correlate, and every few cycles it stages a rogue event (evil twin,
// WPS-exposed AP, strong new transmitter) to exercise the full battery.
type MockScanner struct {
	rand  *rand.Rand
	base  []domain.NetworkObservation
	cycle int
}

// NewMockScanner seeds a stable AP population.
func NewMockScanner(seed int64) *MockScanner {
	r := rand.New(rand.NewSource(seed))
	s := &MockScanner{rand: r}

	count := 8 + r.Intn(8)
	for i := 0; i < count; i++ {
		oui := mockOUIs[r.Intn(len(mockOUIs))]
		obs := domain.NetworkObservation{
			SSID:      mockSSIDs[r.Intn(len(mockSSIDs))],
			BSSID:     fmt.Sprintf("%s:%02X:%02X:%02X", oui, r.Intn(256), r.Intn(256), r.Intn(256)),
			Security:  mockSecurity[r.Intn(len(mockSecurity))],
			RSSI:      -90 + r.Intn(40),
			Frequency: mockFrequencies[r.Intn(len(mockFrequencies))],
			WPS:       r.Intn(10) == 0,
		}
		obs.Capabilities = mockCapabilities(obs)
		s.base = append(s.base, obs)
	}

	return s
}

// AcquireSnapshot returns the stable population with jittered signal levels,
// plus staged rogue events on some cycles.
func (s *MockScanner) AcquireSnapshot(_ context.Context) (domain.ScanSnapshot, error) {
	s.cycle++

	snap := domain.ScanSnapshot{Timestamp: time.Now().UTC()}
	for _, obs := range s.base {
		obs.RSSI += s.rand.Intn(7) - 3
		snap.Observations = append(snap.Observations, obs)
	}

	// Stage an evil twin of a secured network every fifth cycle.
	if s.cycle%5 == 0 {
		for _, obs := range s.base {
			if domain.ClassifySecurity(obs.Security).IsSecured() {
				snap.Observations = append(snap.Observations, domain.NetworkObservation{
					SSID:      obs.SSID,
					BSSID:     fmt.Sprintf("02:00:DE:%02X:%02X:%02X", s.rand.Intn(256), s.rand.Intn(256), s.rand.Intn(256)),
					Security:  "OPEN",
					RSSI:      -35,
					Frequency: obs.Frequency,
				})
				break
			}
		}
	}

	// Occasionally a bait SSID shows up.
	if s.cycle%7 == 0 {
		snap.Observations = append(snap.Observations, domain.NetworkObservation{
			SSID:      "Free Public WiFi",
			BSSID:     fmt.Sprintf("DE:AD:%02X:%02X:%02X:%02X", s.rand.Intn(256), s.rand.Intn(256), s.rand.Intn(256), s.rand.Intn(256)),
			Security:  "OPEN",
			RSSI:      -50 - s.rand.Intn(20),
			Frequency: 2437,
		})
	}

	return snap, nil
}

func mockCapabilities(obs domain.NetworkObservation) string {
	caps := "[HT][VHT]"
	if obs.WPS {
		caps += "[WPS]"
	}
	return caps + "[" + obs.Security + "]"
}
