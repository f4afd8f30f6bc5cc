package models

// Setting is an arbitrary key/value pair persisted across sessions.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingOfflineMode stores the forced-offline toggle ("true"/"false").
// When enabled, all check-in operations take the offline path even while
// the server is reachable.
const SettingOfflineMode = "offlineMode"
