package merchantrepo

import (
	"context"

	"shipping/internal/core/domain/model/merchant"
	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

// GormMerchantRepository implements ports.MerchantRepository using GORM.
type GormMerchantRepository struct {
	db *gorm.DB
}

var _ ports.MerchantRepository = (*GormMerchantRepository)(nil)

func NewGormMerchantRepository(db *gorm.DB) *GormMerchantRepository {
	return &GormMerchantRepository{db: db}
}

func (r *GormMerchantRepository) Add(ctx context.Context, m *merchant.Merchant) error {
	dto := fromDomain(m)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	m.AssignID(dto.ID)
	return nil
}

func (r *GormMerchantRepository) List(ctx context.Context) ([]*merchant.Merchant, error) {
	var dtos []MerchantDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	merchants := make([]*merchant.Merchant, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		merchants = append(merchants, m)
	}

	return merchants, nil
}

func (r *GormMerchantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&MerchantDTO{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
