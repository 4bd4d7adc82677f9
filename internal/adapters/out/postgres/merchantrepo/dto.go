// Package merchantrepo persists the merchant directory.
package merchantrepo

import "shipping/internal/core/domain/model/merchant"

type MerchantDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(128);not null"`
	Category    string `gorm:"type:varchar(64);not null"`
	URL         string `gorm:"type:text;not null;default:''"`
	ImageURL    string `gorm:"type:text;not null;default:''"`
	Description string `gorm:"type:text;not null;default:''"`
}

func (MerchantDTO) TableName() string {
	return "merchants"
}

func fromDomain(m *merchant.Merchant) MerchantDTO {
	return MerchantDTO{
		ID:          m.ID(),
		Name:        m.Name(),
		Category:    m.Category(),
		URL:         m.URL(),
		ImageURL:    m.ImageURL(),
		Description: m.Description(),
	}
}

func toDomain(dto MerchantDTO) (*merchant.Merchant, error) {
	return merchant.RestoreMerchant(dto.ID, dto.Name, dto.Category, dto.URL, dto.ImageURL, dto.Description)
}
