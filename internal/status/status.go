// Package status classifies and renders the state of docker compose services.
//
// A Snapshot holds one Record per declared service, in declared order.
// Classify maps a (state, health) pair to the decoration shown for it, and
// Render turns a Snapshot into the aligned, colored report printed by the
// CLI.
package status

// State is the lifecycle state reported by docker compose for a service.
type State string

// Lifecycle states reported by docker compose. StateNotCreated is never
// reported by the provider; it is synthesized for declared services that have
// no container.
const (
	StateNotCreated State = "not created"
	StateDead       State = "dead"
	StateRemoving   State = "removing"
	StatePaused     State = "paused"
	StateExited     State = "exited"
	StateRestarting State = "restarting"
	StateCreated    State = "created"
	StateRunning    State = "running"
)

// Health is the healthcheck status of a running service container.
type Health string

// Health values. HealthNone means the container has no healthcheck or is not
// running.
const (
	HealthNone      Health = ""
	HealthStarting  Health = "starting"
	HealthHealthy   Health = "healthy"
	HealthUnhealthy Health = "unhealthy"
)

// Record is the status of one service at one point in time.
type Record struct {
	Service string `json:"Service"`
	State   State  `json:"State"`
	Health  Health `json:"Health"`
}

// Snapshot is one Record per declared service, in declared order.
type Snapshot []Record

// placeholder returns the record used for a declared service that has no
// container.
func placeholder(service string) Record {
	return Record{
		Service: service,
		State:   StateNotCreated,
		Health:  HealthNone,
	}
}
