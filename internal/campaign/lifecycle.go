package campaign

import (
	"errors"
	"fmt"
)

// Lifecycle actions. Each is a request; the backend is the sole authority
// over the resulting status. The console rejects actions that are illegal for
// the status it last observed (no wasted round-trip) and then renders
// whatever status the backend returns, never the optimistic target.
type Action string

const (
	ActionStart  Action = "start"
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionStop   Action = "stop"
)

var ErrIllegalTransition = errors.New("campaign: illegal transition")

// legalFrom is the full transition table. Status is the only input; no other
// campaign field affects legality.
var legalFrom = map[Action][]Status{
	ActionStart:  {StatusDraft, StatusScheduled},
	ActionPause:  {StatusRunning},
	ActionResume: {StatusPaused},
	ActionStop:   {StatusRunning, StatusPaused},
}

// LegalActions returns the actions permitted from a status, in stable
// start/pause/resume/stop order.
func LegalActions(s Status) []Action {
	var out []Action
	for _, a := range []Action{ActionStart, ActionPause, ActionResume, ActionStop} {
		if CanApply(s, a) == nil {
			out = append(out, a)
		}
	}
	return out
}

// CanApply reports whether an action may be requested from a status.
func CanApply(s Status, a Action) error {
	from, ok := legalFrom[a]
	if !ok {
		return fmt.Errorf("%w: unknown action %q", ErrIllegalTransition, a)
	}
	for _, f := range from {
		if s == f {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not legal from status %q", ErrIllegalTransition, a, s)
}

// SuccessRate is the integer percentage of completed tasks, rounded half up.
// Defined as 0 when total is 0.
func SuccessRate(total, completed int) int {
	if total <= 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}

func (c *Campaign) SuccessRate() int {
	return SuccessRate(c.TotalTasks, c.CompletedTasks)
}
