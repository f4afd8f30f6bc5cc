// Package station implements the check-in station application runtime.
//
// It wires the terminal UI, the service layer, the connectivity monitor and
// the background sync job into a single process lifecycle. Exactly one
// station instance runs per process.
package station
