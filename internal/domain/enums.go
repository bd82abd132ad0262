package domain

// VesselStatus controls whether a vessel participates in catalog pushes
type VesselStatus string

const (
	VesselStatusEnabled  VesselStatus = "enabled"
	VesselStatusDisabled VesselStatus = "disabled"
)

// IsValid checks if the vessel status is valid
func (s VesselStatus) IsValid() bool {
	switch s {
	case VesselStatusEnabled, VesselStatusDisabled:
		return true
	default:
		return false
	}
}

// SyncStatus tags an inventory mirror entry with the state of its last sync
type SyncStatus string

const (
	SyncStatusIdle      SyncStatus = "idle"
	SyncStatusSyncing   SyncStatus = "syncing"
	SyncStatusConfirmed SyncStatus = "confirmed"
	SyncStatusError     SyncStatus = "error"
)

// IsValid checks if the sync status is valid
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusIdle, SyncStatusSyncing, SyncStatusConfirmed, SyncStatusError:
		return true
	default:
		return false
	}
}
