// Package profilerepo persists customer profiles, one row per user.
package profilerepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/profile"
)

type ProfileDTO struct {
	UserID           string    `gorm:"type:varchar(64);primaryKey"`
	TrustScore       int       `gorm:"not null"`
	CodLimit         int64     `gorm:"not null"`
	PhoneNumber      string    `gorm:"type:varchar(32);not null;default:''"`
	IndianAddress    string    `gorm:"type:text;not null;default:''"`
	WarehouseAddress string    `gorm:"type:text;not null"`
	AadhaarURL       string    `gorm:"type:text;not null;default:''"`
	IsKycVerified    bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false;not null"`
}

func (ProfileDTO) TableName() string {
	return "profiles"
}

func fromDomain(p *profile.Profile) ProfileDTO {
	s := p.Snapshot()
	return ProfileDTO{
		UserID:           s.UserID.String(),
		TrustScore:       s.TrustScore,
		CodLimit:         s.CodLimit,
		PhoneNumber:      s.PhoneNumber,
		IndianAddress:    s.IndianAddress,
		WarehouseAddress: s.WarehouseAddress,
		AadhaarURL:       s.AadhaarURL,
		IsKycVerified:    s.IsKycVerified,
		CreatedAt:        s.CreatedAt.UTC(),
		UpdatedAt:        s.UpdatedAt.UTC(),
	}
}

func toDomain(dto ProfileDTO) (*profile.Profile, error) {
	return profile.RestoreProfile(profile.Snapshot{
		UserID:           kernel.UserID(dto.UserID),
		TrustScore:       dto.TrustScore,
		CodLimit:         dto.CodLimit,
		PhoneNumber:      dto.PhoneNumber,
		IndianAddress:    dto.IndianAddress,
		WarehouseAddress: dto.WarehouseAddress,
		AadhaarURL:       dto.AadhaarURL,
		IsKycVerified:    dto.IsKycVerified,
		CreatedAt:        dto.CreatedAt.UTC(),
		UpdatedAt:        dto.UpdatedAt.UTC(),
	})
}
