package event

// InstanceStarted is emitted once a registry has an instance running on a
// surface.
type InstanceStarted struct {
	Surface    string
	Title      string
	Controlled bool // a controller was resolved for the surface
}

// InstanceStopped is emitted when an instance is torn down, whether by Stop,
// by replacement, or by a failed start.
type InstanceStopped struct {
	Surface string
	Frame   int
	Shots   int
}
