package parcel

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status is the position of a parcel in its lifecycle. Statuses are ordered
// and a parcel only ever moves one step forward:
//
//	Registered ─receive─> Received ─weigh─> Weighing ─inspect─> Checking
//	    ─approve─> ReadyToShip ─ship─> Shipped ─confirm delivery─> Delivered
//
// Checking -> ReadyToShip additionally requires a completed voice verification.
type Status int

const (
	// Unknown catches uninitialized values and unparseable input.
	Unknown Status = iota

	// Registered is the initial status set when the customer announces a parcel.
	Registered

	// Received means the parcel physically arrived at the warehouse.
	Received

	// Weighing means a weight was recorded and the COD amount is known.
	Weighing

	// Checking means the contents are being inspected and photographed.
	Checking

	// ReadyToShip means inspection passed and the COD order was confirmed by voice.
	ReadyToShip

	// Shipped means the parcel left the warehouse.
	Shipped

	// Delivered is terminal.
	Delivered
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Registered:  "registered",
		Received:    "received",
		Weighing:    "weighing",
		Checking:    "checking",
		ReadyToShip: "ready_to_ship",
		Shipped:     "shipped",
		Delivered:   "delivered",
	}
}

// Statuses lists the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Registered, Received, Weighing, Checking, ReadyToShip, Shipped, Delivered}
}

// ParseStatus maps the wire/database name of a status back to its value.
func ParseStatus(name string) (Status, error) {
	for _, s := range Statuses() {
		if getStatusNames()[s] == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// Validate checks that s is one of the lifecycle statuses.
func (s Status) Validate() error {
	if s < Registered || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used on the wire and in storage.
func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "unknown"
}

// Next returns the status that immediately follows s. Delivered has no successor.
func (s Status) Next() (Status, bool) {
	if s.Validate() != nil || s == Delivered {
		return Unknown, false
	}
	return s + 1, true
}

// ValidateTransition allows only the immediate next status.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	next, ok := s.Next()
	if !ok || next != target {
		return errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return nil
}

// AcceptsWeight reports whether an operator may (re)weigh a parcel in this status.
// Weighing is possible from physical receipt until inspection ends.
func (s Status) AcceptsWeight() bool {
	return s == Received || s == Weighing || s == Checking
}

// AcceptsImages reports whether inspection photos may be attached.
func (s Status) AcceptsImages() bool {
	return s == Weighing || s == Checking
}

// AcceptsVerification reports whether a voice verification may still run.
// Once a parcel is ready to ship the verification has necessarily happened.
func (s Status) AcceptsVerification() bool {
	return s >= Registered && s < ReadyToShip
}

// IsShipped reports whether the parcel has left the warehouse.
func (s Status) IsShipped() bool {
	return s == Shipped || s == Delivered
}
