package profilerepo

import (
	"context"
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/profile"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository implements ports.ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

var _ ports.ProfileRepository = (*GormProfileRepository)(nil)

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Add inserts the profile unless the user already has one.
func (r *GormProfileRepository) Add(ctx context.Context, aggregate *profile.Profile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewValueIsInvalidErrorWithCause("userId", fmt.Errorf("profile of %s already exists", dto.UserID))
	}

	return nil
}

func (r *GormProfileRepository) Update(ctx context.Context, aggregate *profile.Profile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ProfileDTO{}).
		Where("user_id = ?", dto.UserID).
		Updates(map[string]any{
			"trust_score":     dto.TrustScore,
			"cod_limit":       dto.CodLimit,
			"phone_number":    dto.PhoneNumber,
			"indian_address":  dto.IndianAddress,
			"aadhaar_url":     dto.AadhaarURL,
			"is_kyc_verified": dto.IsKycVerified,
			"updated_at":      dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("profile", dto.UserID)
	}

	return nil
}

func (r *GormProfileRepository) Get(ctx context.Context, userID kernel.UserID) (*profile.Profile, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("profile", userID)
		}
		return nil, err
	}

	return toDomain(dto)
}
