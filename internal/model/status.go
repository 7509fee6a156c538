package model

// Status is a timecard's position in the review workflow.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// transitions is the allowed workflow graph. A rejected card goes back to
// draft so the crew member can correct and resubmit it.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
	StatusRejected:  {StatusDraft},
}

// CanTransition reports whether a card may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Editable reports whether a card in the given status may still be modified.
// Submitted and approved cards are locked.
func Editable(s Status) bool {
	return s == StatusDraft || s == StatusRejected
}
