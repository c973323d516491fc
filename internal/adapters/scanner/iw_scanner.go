package scanner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
	"github.com/lcalzada-xor/airsentry/internal/core/ports"
)

// IWScanner acquires snapshots by running `iw dev <iface> scan` and parsing
// its structured text output. No monitor mode or frame capture is involved;
// the interface only needs to be up.
type IWScanner struct {
	Interface string
}

// NewIWScanner creates a scanner bound to one wireless interface.
func NewIWScanner(iface string) *IWScanner {
	return &IWScanner{Interface: iface}
}

// AcquireSnapshot runs one scan pass. Fails with ports.ErrScanUnavailable
// when iw is missing, the interface is down, or the device is busy.
func (s *IWScanner) AcquireSnapshot(ctx context.Context) (domain.ScanSnapshot, error) {
	cmd := exec.CommandContext(ctx, "iw", "dev", s.Interface, "scan")
	out, err := cmd.Output()
	if err != nil {
		return domain.ScanSnapshot{}, fmt.Errorf("%w: iw scan on %s: %v", ports.ErrScanUnavailable, s.Interface, err)
	}

	return domain.ScanSnapshot{
		Timestamp:    time.Now().UTC(),
		Observations: parseScanOutput(out),
	}, nil
}

// Example block:
//
//	BSS aa:bb:cc:dd:ee:ff(on wlan0)
//	        freq: 2412
//	        signal: -45.00 dBm
//	        SSID: MyNet
//	        capability: ESS Privacy ShortSlotTime (0x0411)
//	        RSN:     * Version: 1
//	                 * Authentication suites: PSK
//	        WPS:     * Version: 1.0
//	        HT capabilities:
var (
	reBSS    = regexp.MustCompile(`^BSS ([0-9a-fA-F:]{17})`)
	reSignal = regexp.MustCompile(`^signal: (-?[0-9]+(?:\.[0-9]+)?) dBm`)
)

// parseScanOutput converts raw iw scan text into observations.
func parseScanOutput(out []byte) []domain.NetworkObservation {
	var (
		observations []domain.NetworkObservation
		current      *bssBlock
	)

	flush := func() {
		if current != nil {
			observations = append(observations, current.toObservation())
			current = nil
		}
	}

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if m := reBSS.FindStringSubmatch(line); m != nil {
			flush()
			current = &bssBlock{bssid: strings.ToUpper(m[1])}
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "freq:"):
			// 6 GHz scans report fractional frequencies, e.g. "5955.0"
			value := strings.TrimSpace(strings.TrimPrefix(line, "freq:"))
			if dot := strings.IndexByte(value, '.'); dot > 0 {
				value = value[:dot]
			}
			if freq, err := strconv.Atoi(value); err == nil {
				current.freq = freq
			}
		case strings.HasPrefix(line, "SSID:"):
			current.ssid = strings.TrimSpace(strings.TrimPrefix(line, "SSID:"))
		case strings.HasPrefix(line, "capability:"):
			current.privacy = strings.Contains(line, "Privacy")
		case strings.HasPrefix(line, "RSN:"):
			current.rsn = true
		case strings.HasPrefix(line, "WPA:"):
			current.wpa = true
		case strings.HasPrefix(line, "WPS:"):
			current.wps = true
		case strings.Contains(line, "* Authentication suites:"):
			if strings.Contains(line, "SAE") {
				current.sae = true
			}
		case strings.HasPrefix(line, "HT capabilities:"):
			current.standards = appendUnique(current.standards, "HT")
		case strings.HasPrefix(line, "VHT capabilities:"):
			current.standards = appendUnique(current.standards, "VHT")
		case strings.HasPrefix(line, "HE capabilities:"):
			current.standards = appendUnique(current.standards, "HE")
		case strings.HasPrefix(line, "EHT capabilities:"):
			current.standards = appendUnique(current.standards, "EHT")
		default:
			if m := reSignal.FindStringSubmatch(line); m != nil {
				if dbm, err := strconv.ParseFloat(m[1], 64); err == nil {
					current.signal = int(dbm)
				}
			}
		}
	}
	flush()

	return observations
}

type bssBlock struct {
	bssid     string
	ssid      string
	freq      int
	signal    int
	privacy   bool
	rsn       bool
	wpa       bool
	sae       bool
	wps       bool
	standards []string
}

// toObservation derives the free-text security descriptor and capability
// flags the engine expects.
func (b *bssBlock) toObservation() domain.NetworkObservation {
	var security string
	switch {
	case b.rsn && b.sae:
		security = "WPA3-SAE"
	case b.rsn:
		security = "WPA2-PSK"
	case b.wpa:
		security = "WPA-PSK"
	case b.privacy:
		security = "WEP"
	default:
		security = "OPEN"
	}

	var caps []string
	for _, std := range b.standards {
		caps = append(caps, "["+std+"]")
	}
	caps = append(caps, "["+security+"]")
	if b.wps {
		caps = append(caps, "[WPS]")
	}

	return domain.NetworkObservation{
		SSID:         b.ssid,
		BSSID:        b.bssid,
		Security:     security,
		RSSI:         b.signal,
		Frequency:    b.freq,
		Capabilities: strings.Join(caps, ""),
		WPS:          b.wps,
	}
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
