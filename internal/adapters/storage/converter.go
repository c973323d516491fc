package storage

import (
	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// toSnapshotModel converts a domain snapshot to its persistence model.
func toSnapshotModel(snap domain.ScanSnapshot) SnapshotModel {
	model := SnapshotModel{Timestamp: snap.Timestamp}
	for _, obs := range snap.Observations {
		model.Observations = append(model.Observations, ObservationModel{
			SSID:         obs.SSID,
			BSSID:        obs.BSSID,
			Security:     obs.Security,
			RSSI:         obs.RSSI,
			Frequency:    obs.Frequency,
			Capabilities: obs.Capabilities,
			WPS:          obs.WPS,
		})
	}
	return model
}

// toSnapshot converts a persistence model back to the domain type.
func toSnapshot(model SnapshotModel) domain.ScanSnapshot {
	snap := domain.ScanSnapshot{Timestamp: model.Timestamp}
	for _, obs := range model.Observations {
		snap.Observations = append(snap.Observations, domain.NetworkObservation{
			SSID:         obs.SSID,
			BSSID:        obs.BSSID,
			Security:     obs.Security,
			RSSI:         obs.RSSI,
			Frequency:    obs.Frequency,
			Capabilities: obs.Capabilities,
			WPS:          obs.WPS,
		})
	}
	return snap
}
