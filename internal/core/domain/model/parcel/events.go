package parcel

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
)

const (
	EventCreated        = "parcel.created"
	EventStatusChanged  = "parcel.status_changed"
	EventWeighed        = "parcel.weighed"
	EventImagesAttached = "parcel.images_attached"
	EventVoiceVerified  = "parcel.voice_verified"
)

// Event is the domain event recorded by Parcel mutations. It carries the
// parcel state right after the change so consumers do not need to read back.
type Event struct {
	Type           string    `json:"type"`
	ParcelID       int64     `json:"parcelId"`
	UserID         string    `json:"userId"`
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	CodAmount      int64     `json:"codAmount"`
	At             time.Time `json:"occurredAt"`
}

var _ kernel.DomainEvent = Event{}

func (e Event) EventType() string {
	return e.Type
}

func (e Event) PartitionKey() string {
	return kernel.ParcelID(e.ParcelID).String()
}

func (e Event) OccurredAt() time.Time {
	return e.At
}

func (p *Parcel) record(eventType string, previous Status) {
	e := Event{
		Type:           eventType,
		ParcelID:       p.id.Int64(),
		UserID:         p.userID.String(),
		TrackingNumber: p.trackingNumber,
		Status:         p.status.String(),
		CodAmount:      p.codAmount,
		At:             p.updatedAt,
	}
	if previous != Unknown && previous != p.status {
		e.PreviousStatus = previous.String()
	}
	p.events.Record(e)
}
