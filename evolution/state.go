// SPDX-License-Identifier: MIT

package evolution

import "fmt"

// State is the lifecycle phase of an Engine.
type State int32

const (
	// Idle: constructed, never run.
	Idle State = iota
	// Running: inside Run.
	Running
	// Stopped: Run returned early on Stop or context cancellation; Run resumes.
	Stopped
	// Completed: the generation budget is spent. Terminal.
	Completed
	// Failed: an operator returned an error mid-generation. Terminal.
	Failed
)

var stateNames = [...]string{
	Idle:      "idle",
	Running:   "running",
	Stopped:   "stopped",
	Completed: "completed",
	Failed:    "failed",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int32(s))
	}

	return stateNames[s]
}

// Outcome tells why Run returned without error.
type Outcome int

const (
	// OutcomeCompleted: every generation of the budget ran.
	OutcomeCompleted Outcome = iota
	// OutcomeStopped: Run returned at a generation boundary on request.
	OutcomeStopped
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeStopped:
		return "stopped"
	}

	return fmt.Sprintf("Outcome(%d)", int(o))
}
