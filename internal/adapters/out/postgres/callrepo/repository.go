package callrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/call"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCallRepository implements ports.CallRepository using GORM.
type GormCallRepository struct {
	db *gorm.DB
}

var _ ports.CallRepository = (*GormCallRepository)(nil)

func NewGormCallRepository(db *gorm.DB) *GormCallRepository {
	return &GormCallRepository{db: db}
}

func (r *GormCallRepository) Add(ctx context.Context, aggregate *call.Call) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		// ErrDuplicatedKey needs gorm.Config.TranslateError; the primary key
		// is a fresh uuid, so only the active-attempt index can collide.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrVerificationInProgress
		}
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Update writes the call only if the stored version still equals the version
// it was loaded with.
func (r *GormCallRepository) Update(ctx context.Context, aggregate *call.Call) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CallDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Updates(map[string]any{
			"status":           dto.Status,
			"duration_seconds": dto.DurationSeconds,
			"recording_url":    dto.RecordingURL,
			"failure":          dto.Failure,
			"updated_at":       dto.UpdatedAt,
			"version":          expected + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&CallDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("call", aggregate.ID())
		}
		return errs.NewConcurrentModificationError("call", aggregate.ID(), expected)
	}

	aggregate.MarkPersisted(expected + 1)
	return nil
}

func (r *GormCallRepository) Get(ctx context.Context, id kernel.CallID) (*call.Call, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CallDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.UUID()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("call", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCallRepository) ListActive(ctx context.Context) ([]*call.Call, error) {
	active := []string{call.Dialing.String(), call.Connected.String()}

	var dtos []CallDTO
	if err := r.db.WithContext(ctx).Order("created_at").Find(&dtos, "status IN ?", active).Error; err != nil {
		return nil, err
	}

	calls := make([]*call.Call, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}

	return calls, nil
}

func (r *GormCallRepository) HasActive(ctx context.Context, parcelID kernel.ParcelID) (bool, error) {
	active := []string{call.Dialing.String(), call.Connected.String()}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&CallDTO{}).
		Where("parcel_id = ? AND status IN ?", parcelID.Int64(), active).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
