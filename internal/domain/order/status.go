package order

import "fmt"

// Status is the order lifecycle state. The string values are the wire
// representation and match what the storefront displays.
type Status string

const (
	StatusPending      Status = "Pending"
	StatusPaid         Status = "Paid"
	StatusFailed       Status = "Failed"
	StatusInProduction Status = "In Production"
	StatusCompleted    Status = "Completed"
	StatusCancelled    Status = "Cancelled"
)

// transitions is the single owned definition of the lifecycle. Every write
// path (admin, mock confirmation, webhook) goes through Transition; nothing
// assigns Status directly.
var transitions = map[Status][]Status{
	StatusPending:      {StatusPaid, StatusFailed, StatusCancelled},
	StatusPaid:         {StatusInProduction, StatusFailed, StatusCancelled},
	StatusFailed:       {StatusPending, StatusCancelled}, // retry allowed
	StatusInProduction: {StatusCompleted, StatusCancelled},
	StatusCompleted:    {},
	StatusCancelled:    {},
}

// ParseStatus maps a wire value to a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s != ""
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
// It is a pure function of the two statuses.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedNext returns the destinations reachable from the given status.
// The admin console derives its available actions from this.
func AllowedNext(from Status) []Status {
	allowed := transitions[from]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// Transition applies the requested status to the order after validating it
// against the transition table. The order is left untouched on failure.
func (o *Order) Transition(to Status) error {
	if _, ok := transitions[to]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	o.Status = to
	return nil
}
