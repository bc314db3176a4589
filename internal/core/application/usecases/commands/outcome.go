package commands

// Outcome tells an event consumer what a saga step did with an event. Only OutcomeApplied
// changed state; every other outcome is a deliberate no-op that is logged and acknowledged.
type Outcome string

const (
	OutcomeApplied            Outcome = "applied"
	OutcomeStale              Outcome = "stale"
	OutcomeNotFound           Outcome = "not_found"
	OutcomeDuplicate          Outcome = "duplicate"
	OutcomeNoDriversAvailable Outcome = "no_drivers"
	OutcomeNoActiveAssignment Outcome = "no_active_assignment"
)

// IsApplied reports whether the step changed state.
func (o Outcome) IsApplied() bool {
	return o == OutcomeApplied
}
