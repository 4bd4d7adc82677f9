package parcel

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created through
	// NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	// ErrIDAlreadyAssigned is returned when a store tries to assign a second identity.
	ErrIDAlreadyAssigned = errors.New("parcel id is already assigned")
)

// CodEstimator turns a measured weight into the cash-on-delivery amount.
// The COD amount of a parcel never comes from client input.
type CodEstimator interface {
	CodAmount(weight kernel.Weight) int64
}

// Parcel is the aggregate root of a shipment from registration to delivery.
//
// Parcel follows these invariants:
//   - The owner never changes after creation
//   - The tracking number is not empty
//   - Status only moves to the immediate next status
//   - Checking -> ReadyToShip requires a completed voice verification
//   - The COD amount is non-negative and derived from the weight only
//   - Voice verification is monotonic: once true it stays true
//   - A rejected operation leaves every field untouched
type Parcel struct {
	id             kernel.ParcelID
	userID         kernel.UserID
	trackingNumber string
	description    string
	weight         *kernel.Weight
	status         Status
	codAmount      int64
	images         []string
	voiceVerified  bool
	createdAt      time.Time
	updatedAt      time.Time

	// version is the optimistic concurrency token the parcel was loaded with.
	version int64

	events        kernel.EventRecorder
	isConstructed bool
}

// NewParcel registers a new parcel for userID. The parcel starts in Registered
// status, with no weight, a zero COD amount and no voice verification.
// Its identity is assigned by the store when it is added.
//
// Example:
//
//	p, err := parcel.NewParcel("demo-001", "SF123", "winter jackets", time.Now())
//	if err != nil {
//	    return err
//	}
//	if err = repo.Add(ctx, p); err != nil {
//	    return err
//	}
//	fmt.Println(p.ID()) // assigned by the store
func NewParcel(userID kernel.UserID, trackingNumber, description string, now time.Time) (*Parcel, error) {
	p := &Parcel{
		status:        Registered,
		images:        []string{},
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setUserID(userID),
		p.setTrackingNumber(trackingNumber),
	); err != nil {
		return nil, err
	}
	p.description = strings.TrimSpace(description)

	return p, nil
}

// Snapshot is the complete persisted state of a parcel. Repositories use it to
// rebuild aggregates through RestoreParcel.
type Snapshot struct {
	ID              kernel.ParcelID
	UserID          kernel.UserID
	TrackingNumber  string
	Description     string
	WeightKg        *float64
	Status          Status
	CodAmount       int64
	Images          []string
	IsVoiceVerified bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
}

// RestoreParcel rebuilds a parcel from storage, re-checking every invariant
// that can be checked on a single record.
func RestoreParcel(s Snapshot) (*Parcel, error) {
	p := &Parcel{
		description:   s.Description,
		codAmount:     s.CodAmount,
		voiceVerified: s.IsVoiceVerified,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		images:        slices.Clone(s.Images),
		isConstructed: true,
	}
	if p.images == nil {
		p.images = []string{}
	}

	if err := errors.Join(
		s.ID.Validate(),
		p.setUserID(s.UserID),
		p.setTrackingNumber(s.TrackingNumber),
		p.restoreStatus(s.Status, s.IsVoiceVerified),
		p.restoreWeight(s.WeightKg),
		p.restoreCodAmount(s.CodAmount),
	); err != nil {
		return nil, err
	}
	p.id = s.ID

	return p, nil
}

// Snapshot exports the aggregate state for persistence.
func (p *Parcel) Snapshot() Snapshot {
	var weightKg *float64
	if p.weight != nil {
		kg := p.weight.Kg()
		weightKg = &kg
	}

	return Snapshot{
		ID:              p.id,
		UserID:          p.userID,
		TrackingNumber:  p.trackingNumber,
		Description:     p.description,
		WeightKg:        weightKg,
		Status:          p.status,
		CodAmount:       p.codAmount,
		Images:          slices.Clone(p.images),
		IsVoiceVerified: p.voiceVerified,
		CreatedAt:       p.createdAt,
		UpdatedAt:       p.updatedAt,
		Version:         p.version,
	}
}

// Validate ensures the Parcel was constructed through NewParcel or RestoreParcel.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) ID() kernel.ParcelID {
	return p.id
}

func (p *Parcel) UserID() kernel.UserID {
	return p.userID
}

func (p *Parcel) TrackingNumber() string {
	return p.trackingNumber
}

func (p *Parcel) Description() string {
	return p.description
}

// Weight returns nil until an operator records one.
func (p *Parcel) Weight() *kernel.Weight {
	return p.weight
}

func (p *Parcel) Status() Status {
	return p.status
}

func (p *Parcel) CodAmount() int64 {
	return p.codAmount
}

// Images returns a copy of the inspection image URLs in the order they were attached.
func (p *Parcel) Images() []string {
	return slices.Clone(p.images)
}

func (p *Parcel) IsVoiceVerified() bool {
	return p.voiceVerified
}

func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// Version is the optimistic concurrency token the aggregate was loaded or last saved with.
func (p *Parcel) Version() int64 {
	return p.version
}

// IsOwnedBy reports whether userID owns the parcel.
func (p *Parcel) IsOwnedBy(userID kernel.UserID) bool {
	return p.userID == userID
}

// AssignID is called by the store when the parcel is first persisted.
func (p *Parcel) AssignID(id kernel.ParcelID) error {
	if p.id != 0 {
		return ErrIDAlreadyAssigned
	}
	if err := id.Validate(); err != nil {
		return err
	}

	p.id = id
	p.record(EventCreated, Unknown)
	return nil
}

// MarkPersisted is called by the store after a successful write with the new version.
func (p *Parcel) MarkPersisted(version int64) {
	p.version = version
}

// PullEvents returns the domain events recorded since the last call.
func (p *Parcel) PullEvents() []kernel.DomainEvent {
	return p.events.PullEvents()
}

// Receive records the physical arrival of the parcel at the warehouse.
func (p *Parcel) Receive(now time.Time) error {
	return p.advance(Received, now)
}

// Inspect starts the content check of a weighed parcel.
func (p *Parcel) Inspect(now time.Time) error {
	return p.advance(Checking, now)
}

// Approve releases an inspected parcel for shipping. It requires a completed
// voice verification.
func (p *Parcel) Approve(now time.Time) error {
	if p.status == Checking && !p.voiceVerified {
		return errs.ErrVerificationRequired
	}
	return p.advance(ReadyToShip, now)
}

// Ship records that the parcel left the warehouse.
func (p *Parcel) Ship(now time.Time) error {
	return p.advance(Shipped, now)
}

// ConfirmDelivery records the delivery to the customer.
func (p *Parcel) ConfirmDelivery(now time.Time) error {
	return p.advance(Delivered, now)
}

// Transition moves the parcel to target, which must be the immediate next status.
//
// Errors:
//   - errs.ValueIsInvalidError when target is not a lifecycle status
//   - errs.InvalidTransitionError when target is not the next status
//   - errs.ErrVerificationRequired when approving an unverified parcel
//   - errs.ValueIsRequiredError when moving to Weighing without a weight
//
// On error the parcel is unchanged.
func (p *Parcel) Transition(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	switch target {
	case ReadyToShip:
		return p.Approve(now)
	case Weighing:
		if err := p.status.ValidateTransition(Weighing); err != nil {
			return err
		}
		if p.weight == nil {
			return errs.NewValueIsRequiredErrorWithCause("weight", fmt.Errorf("parcel %s has not been weighed", p.id))
		}
		return p.advance(Weighing, now)
	default:
		return p.advance(target, now)
	}
}

// RecordWeight stores the measured weight and derives the COD amount from it.
// A received parcel moves to Weighing; later pre-shipping statuses are kept
// so that an operator can correct a weight during inspection.
func (p *Parcel) RecordWeight(weight kernel.Weight, estimator CodEstimator, now time.Time) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	if !p.status.AcceptsWeight() {
		return errs.NewInvalidTransitionErrorWithCause(
			p.status.String(), Weighing.String(),
			fmt.Errorf("weight can only be recorded between %s and %s", Received, Checking),
		)
	}

	codAmount := estimator.CodAmount(weight)
	if codAmount < 0 {
		return errs.NewValueIsOutOfRangeError("codAmount", codAmount, 0, "unbounded")
	}

	previous := p.status
	p.weight = &weight
	p.codAmount = codAmount
	if p.status == Received {
		p.status = Weighing
	}
	p.updatedAt = now

	p.record(EventWeighed, previous)
	return nil
}

// AttachImages appends inspection photo URLs. Images are referenced by URL only.
func (p *Parcel) AttachImages(urls []string, now time.Time) error {
	if len(urls) == 0 {
		return errs.NewValueIsRequiredError("images")
	}

	cleaned := make([]string, 0, len(urls))
	for i, raw := range urls {
		u := strings.TrimSpace(raw)
		if _, err := url.ParseRequestURI(u); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("images[%d]", i), err)
		}
		cleaned = append(cleaned, u)
	}

	if !p.status.AcceptsImages() {
		return errs.NewInvalidTransitionErrorWithCause(
			p.status.String(), p.status.String(),
			fmt.Errorf("images can only be attached while %s or %s", Weighing, Checking),
		)
	}

	p.images = append(p.images, cleaned...)
	p.updatedAt = now

	p.record(EventImagesAttached, Unknown)
	return nil
}

// MarkVoiceVerified sets the verification flag. It can only be set once and
// only before the parcel is ready to ship.
func (p *Parcel) MarkVoiceVerified(now time.Time) error {
	if p.voiceVerified {
		return errs.ErrAlreadyVerified
	}
	if err := p.ValidateVerifiable(); err != nil {
		return err
	}

	p.voiceVerified = true
	p.updatedAt = now

	p.record(EventVoiceVerified, Unknown)
	return nil
}

// ValidateVerifiable reports whether a voice verification may start for the parcel.
func (p *Parcel) ValidateVerifiable() error {
	if p.voiceVerified {
		return errs.ErrAlreadyVerified
	}
	if !p.status.AcceptsVerification() {
		return errs.NewInvalidTransitionErrorWithCause(
			p.status.String(), p.status.String(),
			fmt.Errorf("voice verification is closed once the parcel is %s", p.status),
		)
	}
	return nil
}

func (p *Parcel) advance(target Status, now time.Time) error {
	if err := p.status.ValidateTransition(target); err != nil {
		return err
	}

	previous := p.status
	p.status = target
	p.updatedAt = now

	p.record(EventStatusChanged, previous)
	return nil
}

func (p *Parcel) setUserID(userID kernel.UserID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	p.userID = userID
	return nil
}

func (p *Parcel) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	p.trackingNumber = trackingNumber
	return nil
}

func (p *Parcel) restoreStatus(status Status, voiceVerified bool) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status >= ReadyToShip && !voiceVerified {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s parcel must be voice verified", status),
		)
	}
	p.status = status
	return nil
}

func (p *Parcel) restoreWeight(weightKg *float64) error {
	if weightKg == nil {
		return nil
	}
	w, err := kernel.NewWeight(*weightKg)
	if err != nil {
		return err
	}
	p.weight = &w
	return nil
}

func (p *Parcel) restoreCodAmount(codAmount int64) error {
	if codAmount < 0 {
		return errs.NewValueIsOutOfRangeError("codAmount", codAmount, 0, "unbounded")
	}
	return nil
}
