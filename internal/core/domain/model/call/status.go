package call

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status is the state of a verification call attempt:
//
//	Idle ─dial─> Dialing ─connect─> Connected ─complete─> Completed
//	               └───────────fail────┴──────────────────> Failed
type Status int

const (
	Unknown Status = iota
	Idle
	Dialing
	Connected
	// Completed means the customer confirmed the COD order.
	Completed
	Failed
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Idle:      "idle",
		Dialing:   "dialing",
		Connected: "connected",
		Completed: "completed",
		Failed:    "failed",
	}
}

func ParseStatus(name string) (Status, error) {
	for s, n := range getStatusNames() {
		if s != Unknown && n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("callStatus", fmt.Errorf("%q is not a valid call status", name))
}

func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) Validate() error {
	if s < Idle || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("callStatus", fmt.Errorf("%d is not a valid call status", s))
	}
	return nil
}

// IsTerminal reports whether no further event can change the attempt.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed
}

// IsActive reports whether the attempt is waiting on the provider.
func (s Status) IsActive() bool {
	return s == Dialing || s == Connected
}
