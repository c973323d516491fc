package domain

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Sentinel errors for MAC address handling.
var (
	// ErrInvalidMAC indicates the MAC address format is invalid
	ErrInvalidMAC = errors.New("invalid MAC address format")

	// ErrEmptyMAC indicates an empty MAC address was provided
	ErrEmptyMAC = errors.New("empty MAC address")
)

// UnknownOUI is returned by OUI/prefix extraction for malformed BSSIDs.
// Every OUI- or prefix-keyed heuristic must treat it as "do not match".
const UnknownOUI = "unknown"

// ValidationError wraps validation errors with the invalid value
type ValidationError struct {
	Field string // Field that failed validation
	Value string // Invalid value
	Err   error  // Underlying error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// MACAddress is a value object representing a validated MAC address.
type MACAddress struct {
	address net.HardwareAddr
}

// ParseMAC parses a MAC address string into a MACAddress value object.
// Supports formats: "XX:XX:XX:XX:XX:XX", "XX-XX-XX-XX-XX-XX", "XXXXXXXXXXXX"
func ParseMAC(s string) (MACAddress, error) {
	if s == "" {
		return MACAddress{}, ErrEmptyMAC
	}

	// Normalize separators to colons
	normalized := strings.ReplaceAll(s, "-", ":")
	normalized = strings.ReplaceAll(normalized, ".", ":")

	// If no separators, add them (assumes 12 hex chars)
	if !strings.Contains(normalized, ":") && len(normalized) == 12 {
		var parts []string
		for i := 0; i+2 <= len(normalized); i += 2 {
			parts = append(parts, normalized[i:i+2])
		}
		normalized = strings.Join(parts, ":")
	}

	hw, err := net.ParseMAC(normalized)
	if err != nil || len(hw) != 6 {
		return MACAddress{}, &ValidationError{
			Field: "bssid",
			Value: s,
			Err:   ErrInvalidMAC,
		}
	}

	return MACAddress{address: hw}, nil
}

// MustParseMAC parses a MAC address and panics on error.
// Only use in tests or with known-valid input.
func MustParseMAC(s string) MACAddress {
	mac, err := ParseMAC(s)
	if err != nil {
		panic(fmt.Sprintf("invalid MAC address %q: %v", s, err))
	}
	return mac
}

// OUI returns the Organizationally Unique Identifier (first 3 octets) as
// "XX:XX:XX".
func (m MACAddress) OUI() string {
	if len(m.address) < 3 {
		return ""
	}
	return fmt.Sprintf("%02X:%02X:%02X", m.address[0], m.address[1], m.address[2])
}

// Prefix4 returns the first 4 octets as "XX:XX:XX:XX". Access points that
// share it are almost always virtual radios on the same hardware.
func (m MACAddress) Prefix4() string {
	if len(m.address) < 4 {
		return ""
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X",
		m.address[0], m.address[1], m.address[2], m.address[3])
}

// IsLocallyAdministered checks if the MAC has the Locally Administered
// Address (LAA) bit set: the second least significant bit of the first octet.
// Vendor-assigned (universal) MACs have it clear.
func (m MACAddress) IsLocallyAdministered() bool {
	if len(m.address) == 0 {
		return false
	}
	return (m.address[0] & 0x02) != 0
}

// IsMulticast checks if the MAC address is a multicast address.
func (m MACAddress) IsMulticast() bool {
	if len(m.address) == 0 {
		return false
	}
	return (m.address[0] & 0x01) != 0
}

// String returns the MAC address in standard format "XX:XX:XX:XX:XX:XX"
func (m MACAddress) String() string {
	return strings.ToUpper(m.address.String())
}

// ExtractOUI returns the OUI of a raw BSSID string, or UnknownOUI when the
// BSSID does not parse. Total over arbitrary input.
func ExtractOUI(bssid string) string {
	mac, err := ParseMAC(bssid)
	if err != nil {
		return UnknownOUI
	}
	return mac.OUI()
}

// ExtractPrefix4 returns the 4-octet prefix of a raw BSSID string, or
// UnknownOUI when the BSSID does not parse.
func ExtractPrefix4(bssid string) string {
	mac, err := ParseMAC(bssid)
	if err != nil {
		return UnknownOUI
	}
	return mac.Prefix4()
}

// IsLocallyAdministeredBSSID reports whether the raw BSSID parses and carries
// the LAA bit. Malformed input returns false.
func IsLocallyAdministeredBSSID(bssid string) bool {
	mac, err := ParseMAC(bssid)
	if err != nil {
		return false
	}
	return mac.IsLocallyAdministered()
}
