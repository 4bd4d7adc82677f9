package kernel

import (
	"fmt"

	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrCallIDIsNotConstructed is returned when validating a zero CallID.
var ErrCallIDIsNotConstructed = errs.NewValueIsRequiredError("CallID must be created via NewCallID or CallIDFromString")

// CallID identifies one verification call attempt. It is handed to the call
// provider and comes back on every provider event, so it must be unguessable.
type CallID struct {
	id uuid.UUID
}

// NewCallID generates a random (version 4) call identifier.
func NewCallID() CallID {
	return CallID{id: uuid.New()}
}

// CallIDFromString parses a call identifier reported by a provider or read from storage.
func CallIDFromString(s string) (CallID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CallID{}, errs.NewValueIsInvalidErrorWithCause("callId", fmt.Errorf("invalid UUID format: %w", err))
	}

	callID := CallID{id: id}
	if err = callID.Validate(); err != nil {
		return CallID{}, err
	}
	return callID, nil
}

// CallIDFromUUID wraps an identifier loaded from a uuid column.
func CallIDFromUUID(id uuid.UUID) (CallID, error) {
	callID := CallID{id: id}
	if err := callID.Validate(); err != nil {
		return CallID{}, err
	}
	return callID, nil
}

func (c CallID) String() string {
	return c.id.String()
}

// UUID returns the underlying identifier for persistence.
func (c CallID) UUID() uuid.UUID {
	return c.id
}

func (c CallID) IsEqual(other CallID) bool {
	return c.id == other.id
}

// Validate rejects the nil UUID.
func (c CallID) Validate() error {
	if c.id == uuid.Nil {
		return ErrCallIDIsNotConstructed
	}
	return nil
}
