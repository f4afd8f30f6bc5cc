package station

// Station defines the minimal lifecycle contract for runnable station
// applications.
type Station interface {
	// Run starts the station and blocks until exit.
	Run() error
}
