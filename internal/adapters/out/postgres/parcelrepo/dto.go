// Package parcelrepo persists parcel aggregates in the parcels table and maps
// them between their domain and database representations.
package parcelrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"

	"github.com/lib/pq"
)

// ParcelDTO is the row layout of a parcel. Status is stored by name so the
// table stays readable from psql and stable across enum reorderings.
type ParcelDTO struct {
	ID              int64          `gorm:"primaryKey;autoIncrement"`
	UserID          string         `gorm:"type:varchar(64);not null;index"`
	TrackingNumber  string         `gorm:"type:varchar(64);not null"`
	Description     string         `gorm:"type:text;not null;default:''"`
	WeightKg        *float64       `gorm:"type:double precision"`
	Status          string         `gorm:"type:varchar(32);not null;index"`
	CodAmount       int64          `gorm:"not null;default:0"`
	Images          pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	IsVoiceVerified bool           `gorm:"not null;default:false"`
	CreatedAt       time.Time      `gorm:"autoCreateTime:false;not null"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime:false;not null"`
	Version         int64          `gorm:"not null;default:1"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	s := p.Snapshot()
	images := pq.StringArray(s.Images)
	if images == nil {
		images = pq.StringArray{}
	}

	return ParcelDTO{
		ID:              s.ID.Int64(),
		UserID:          s.UserID.String(),
		TrackingNumber:  s.TrackingNumber,
		Description:     s.Description,
		WeightKg:        s.WeightKg,
		Status:          s.Status.String(),
		CodAmount:       s.CodAmount,
		Images:          images,
		IsVoiceVerified: s.IsVoiceVerified,
		CreatedAt:       s.CreatedAt.UTC(),
		UpdatedAt:       s.UpdatedAt.UTC(),
		Version:         s.Version,
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(parcel.Snapshot{
		ID:              kernel.ParcelID(dto.ID),
		UserID:          kernel.UserID(dto.UserID),
		TrackingNumber:  dto.TrackingNumber,
		Description:     dto.Description,
		WeightKg:        dto.WeightKg,
		Status:          status,
		CodAmount:       dto.CodAmount,
		Images:          []string(dto.Images),
		IsVoiceVerified: dto.IsVoiceVerified,
		CreatedAt:       dto.CreatedAt.UTC(),
		UpdatedAt:       dto.UpdatedAt.UTC(),
		Version:         dto.Version,
	})
}

// changes is the column set written by Update. The version is bumped by the
// caller after the stored version was matched.
func (dto ParcelDTO) changes(version int64) map[string]any {
	return map[string]any{
		"description":       dto.Description,
		"weight_kg":         dto.WeightKg,
		"status":            dto.Status,
		"cod_amount":        dto.CodAmount,
		"images":            dto.Images,
		"is_voice_verified": dto.IsVoiceVerified,
		"updated_at":        dto.UpdatedAt,
		"version":           version,
	}
}
