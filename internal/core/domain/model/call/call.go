package call

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// TypeVerification is the only call type placed by the system today.
const TypeVerification = "verification"

var ErrCallIsNotConstructed = errors.New("Call must be created via NewVerificationCall or RestoreCall")

// Call is one voice verification attempt for a parcel. Attempts are never
// reused: a retry after a failure starts a new Call.
type Call struct {
	id           kernel.CallID
	parcelID     kernel.ParcelID
	userID       kernel.UserID
	callType     string
	status       Status
	duration     time.Duration
	recordingURL string
	failure      string
	createdAt    time.Time
	updatedAt    time.Time

	version       int64
	isConstructed bool
}

// NewVerificationCall creates an idle attempt for parcelID on behalf of userID.
func NewVerificationCall(parcelID kernel.ParcelID, userID kernel.UserID, now time.Time) (*Call, error) {
	if err := errors.Join(parcelID.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	return &Call{
		id:            kernel.NewCallID(),
		parcelID:      parcelID,
		userID:        userID,
		callType:      TypeVerification,
		status:        Idle,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// Snapshot is the persisted call record.
type Snapshot struct {
	ID           kernel.CallID
	ParcelID     kernel.ParcelID
	UserID       kernel.UserID
	Type         string
	Status       Status
	Duration     time.Duration
	RecordingURL string
	Failure      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int64
}

func RestoreCall(s Snapshot) (*Call, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.ParcelID.Validate(),
		s.UserID.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if s.Duration < 0 {
		return nil, errs.NewValueIsOutOfRangeError("duration", s.Duration, 0, "unbounded")
	}

	return &Call{
		id:            s.ID,
		parcelID:      s.ParcelID,
		userID:        s.UserID,
		callType:      s.Type,
		status:        s.Status,
		duration:      s.Duration,
		recordingURL:  s.RecordingURL,
		failure:       s.Failure,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		isConstructed: true,
	}, nil
}

func (c *Call) Snapshot() Snapshot {
	return Snapshot{
		ID:           c.id,
		ParcelID:     c.parcelID,
		UserID:       c.userID,
		Type:         c.callType,
		Status:       c.status,
		Duration:     c.duration,
		RecordingURL: c.recordingURL,
		Failure:      c.failure,
		CreatedAt:    c.createdAt,
		UpdatedAt:    c.updatedAt,
		Version:      c.version,
	}
}

func (c *Call) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCallIsNotConstructed
	}
	return nil
}

func (c *Call) ID() kernel.CallID {
	return c.id
}

func (c *Call) ParcelID() kernel.ParcelID {
	return c.parcelID
}

func (c *Call) UserID() kernel.UserID {
	return c.userID
}

func (c *Call) Type() string {
	return c.callType
}

func (c *Call) Status() Status {
	return c.status
}

func (c *Call) Duration() time.Duration {
	return c.duration
}

func (c *Call) RecordingURL() string {
	return c.recordingURL
}

// Failure is the reason recorded when the attempt failed.
func (c *Call) Failure() string {
	return c.failure
}

func (c *Call) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Call) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Call) Version() int64 {
	return c.version
}

func (c *Call) MarkPersisted(version int64) {
	c.version = version
}

// Dial records that the call was handed to the provider.
func (c *Call) Dial(now time.Time) error {
	if c.status != Idle {
		return errs.NewInvalidTransitionError(c.status.String(), Dialing.String())
	}
	c.status = Dialing
	c.updatedAt = now
	return nil
}

// Connect records that the customer picked up.
func (c *Call) Connect(now time.Time) error {
	if c.status != Dialing {
		return errs.NewInvalidTransitionError(c.status.String(), Connected.String())
	}
	c.status = Connected
	c.updatedAt = now
	return nil
}

// Complete records a confirmed verification. A provider may skip the
// connected notification, so completion is accepted from Dialing as well.
func (c *Call) Complete(duration time.Duration, recordingURL string, now time.Time) error {
	if !c.status.IsActive() {
		return errs.NewInvalidTransitionError(c.status.String(), Completed.String())
	}
	if duration < 0 {
		return errs.NewValueIsOutOfRangeError("duration", duration, 0, "unbounded")
	}
	c.status = Completed
	c.duration = duration
	c.recordingURL = strings.TrimSpace(recordingURL)
	c.updatedAt = now
	return nil
}

// Fail ends an attempt that has not reached a terminal status.
func (c *Call) Fail(reason string, now time.Time) error {
	if !c.status.IsActive() && c.status != Idle {
		return errs.NewInvalidTransitionError(c.status.String(), Failed.String())
	}
	c.status = Failed
	c.failure = strings.TrimSpace(reason)
	c.updatedAt = now
	return nil
}

// IsStale reports whether an active attempt has not progressed within timeout.
func (c *Call) IsStale(now time.Time, timeout time.Duration) bool {
	return c.status.IsActive() && now.Sub(c.updatedAt) > timeout
}

func (c *Call) String() string {
	return fmt.Sprintf("call %s for parcel %s (%s)", c.id, c.parcelID, c.status)
}
