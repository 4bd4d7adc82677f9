// Package callrepo persists voice verification call attempts.
package callrepo

import (
	"time"

	"shipping/internal/core/domain/model/call"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CallDTO is the row layout of a call attempt. Durations are kept in whole
// seconds, the resolution providers report. The partial unique index allows
// one dialing or connected attempt per parcel across all instances.
type CallDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID        int64     `gorm:"not null;index;uniqueIndex:idx_calls_active_parcel,where:status = 'dialing' OR status = 'connected'"`
	UserID          string    `gorm:"type:varchar(64);not null"`
	Type            string    `gorm:"type:varchar(32);not null"`
	Status          string    `gorm:"type:varchar(16);not null;index"`
	DurationSeconds int64     `gorm:"not null;default:0"`
	RecordingURL    string    `gorm:"type:text;not null;default:''"`
	Failure         string    `gorm:"type:text;not null;default:''"`
	CreatedAt       time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false;not null"`
	Version         int64     `gorm:"not null;default:1"`
}

func (CallDTO) TableName() string {
	return "calls"
}

func fromDomain(c *call.Call) CallDTO {
	s := c.Snapshot()
	return CallDTO{
		ID:              s.ID.UUID(),
		ParcelID:        s.ParcelID.Int64(),
		UserID:          s.UserID.String(),
		Type:            s.Type,
		Status:          s.Status.String(),
		DurationSeconds: int64(s.Duration / time.Second),
		RecordingURL:    s.RecordingURL,
		Failure:         s.Failure,
		CreatedAt:       s.CreatedAt.UTC(),
		UpdatedAt:       s.UpdatedAt.UTC(),
		Version:         s.Version,
	}
}

func toDomain(dto CallDTO) (*call.Call, error) {
	id, err := kernel.CallIDFromUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := call.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return call.RestoreCall(call.Snapshot{
		ID:           id,
		ParcelID:     kernel.ParcelID(dto.ParcelID),
		UserID:       kernel.UserID(dto.UserID),
		Type:         dto.Type,
		Status:       status,
		Duration:     time.Duration(dto.DurationSeconds) * time.Second,
		RecordingURL: dto.RecordingURL,
		Failure:      dto.Failure,
		CreatedAt:    dto.CreatedAt.UTC(),
		UpdatedAt:    dto.UpdatedAt.UTC(),
		Version:      dto.Version,
	})
}
