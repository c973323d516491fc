package domain

import "strings"

// SecurityClass is the closed canonical form of the free-text security
// descriptor a scanner reports. It is computed once per observation and
// reused by every heuristic, replacing ad-hoc substring checks.
type SecurityClass string

const (
	SecurityOpen    SecurityClass = "OPEN"
	SecurityWEP     SecurityClass = "WEP"
	SecurityWPA     SecurityClass = "WPA"
	SecurityWPA2    SecurityClass = "WPA2"
	SecurityWPA3    SecurityClass = "WPA3"
	SecurityUnknown SecurityClass = "UNKNOWN"
)

// ClassifySecurity canonicalizes a free-text encryption descriptor.
// An empty descriptor means the scanner recorded nothing and classifies as
// SecurityUnknown; any non-empty descriptor without a WPA/WEP/SAE marker
// classifies as SecurityOpen.
func ClassifySecurity(security string) SecurityClass {
	if strings.TrimSpace(security) == "" {
		return SecurityUnknown
	}

	s := strings.ToLower(security)
	switch {
	case strings.Contains(s, "wpa3") || strings.Contains(s, "sae"):
		return SecurityWPA3
	case strings.Contains(s, "wpa2") || strings.Contains(s, "rsn"):
		return SecurityWPA2
	case strings.Contains(s, "wpa"):
		return SecurityWPA
	case strings.Contains(s, "wep"):
		return SecurityWEP
	default:
		return SecurityOpen
	}
}

// IsOpen reports whether the class represents an unencrypted network.
func (c SecurityClass) IsOpen() bool {
	return c == SecurityOpen
}

// IsSecured reports whether the class represents an encrypted network.
// SecurityUnknown is neither open nor secured.
func (c SecurityClass) IsSecured() bool {
	switch c {
	case SecurityWEP, SecurityWPA, SecurityWPA2, SecurityWPA3:
		return true
	}
	return false
}
