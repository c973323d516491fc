package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// ExportReportJSON writes a full analysis report as indented JSON.
func ExportReportJSON(w io.Writer, report domain.AnalysisReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// ExportFindingsCSV writes findings as CSV with headers.
func ExportFindingsCSV(w io.Writer, findings []domain.ThreatFinding) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{
		"SSID", "BSSID", "Type", "Severity", "Description", "Evidence", "Timestamp",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, f := range findings {
		row := []string{
			f.SSID,
			f.BSSID,
			string(f.Type),
			f.Severity.String(),
			f.Description,
			strings.Join(f.Evidence, "; "),
			f.Timestamp.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

// ExportWiGLE writes a snapshot in the WiGLE CSV upload format so survey
// results can be cross-referenced against the wardriving database.
func ExportWiGLE(w io.Writer, snap domain.ScanSnapshot) error {
	// WiGLE preheader identifies format and producer.
	if _, err := fmt.Fprintln(w, "WigleWifi-1.4,appRelease=1.0.0,model=airsentry,release=1.0.0,device=airsentry,display=,board=,brand="); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{
		"MAC", "SSID", "AuthMode", "FirstSeen", "Channel", "RSSI",
		"CurrentLatitude", "CurrentLongitude", "AltitudeMeters", "AccuracyMeters", "Type",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	seen := snap.Timestamp.Format("2006-01-02 15:04:05")
	for _, obs := range snap.Observations {
		row := []string{
			obs.BSSID,
			obs.SSID,
			wigleAuthMode(obs),
			seen,
			fmt.Sprintf("%d", domain.FrequencyToChannel(obs.Frequency)),
			fmt.Sprintf("%d", obs.RSSI),
			"0", "0", "0", "0",
			"WIFI",
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

// wigleAuthMode renders the security class in WiGLE's bracket notation.
func wigleAuthMode(obs domain.NetworkObservation) string {
	switch domain.ClassifySecurity(obs.Security) {
	case domain.SecurityWPA3:
		return "[WPA3-SAE-CCMP][ESS]"
	case domain.SecurityWPA2:
		return "[WPA2-PSK-CCMP][ESS]"
	case domain.SecurityWPA:
		return "[WPA-PSK-TKIP][ESS]"
	case domain.SecurityWEP:
		return "[WEP][ESS]"
	case domain.SecurityOpen:
		return "[ESS]"
	default:
		return ""
	}
}
