// Package script holds the attack controller model pattern authors compose:
// a Plural selects one active Single per tick, a Single runs its body and an
// ordered list of Tasks, and each Task is an independently ticked unit of
// spawning logic with its own lifetime.
//
// All three tiers satisfy Controller; the engine only ever calls through it.
// Everything here runs on the loop goroutine and is not safe for concurrent use.
package script

// Controller is the capability every tier exposes to its parent.
type Controller interface {
	// Update runs one tick of work.
	Update()
	// Remove releases everything the controller created. Called at most once
	// by the owning tier.
	Remove()
}

// Task is a Controller that can report it has run its course.
type Task interface {
	Controller
	Finished() bool
}
