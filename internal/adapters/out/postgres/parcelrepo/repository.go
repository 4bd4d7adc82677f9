package parcelrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects saved aggregates for event publishing.
type aggregateTracker interface {
	TrackAggregate(aggregate any)
}

var _ ports.ParcelRepository = (*GormParcelRepository)(nil)

func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new parcel and assigns the identity generated by the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := aggregate.AssignID(kernel.ParcelID(dto.ID)); err != nil {
		return err
	}
	aggregate.MarkPersisted(dto.Version)

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes the parcel only if the stored version still equals the
// version it was loaded with.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if err := id.Validate(); err != nil {
		return err
	}
	expected := aggregate.Version()

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", id.Int64(), expected).
		Updates(dto.changes(expected + 1))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, id, expected)
	}

	aggregate.MarkPersisted(expected + 1)
	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormParcelRepository) Get(ctx context.Context, id kernel.ParcelID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]*parcel.Parcel, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos, "user_id = ?", userID.String()).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

func (r *GormParcelRepository) Stats(ctx context.Context) (ports.ParcelStats, error) {
	shipped := []string{parcel.Shipped.String(), parcel.Delivered.String()}

	var row struct {
		Total                int64
		AwaitingVerification int64
		Revenue              int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status NOT IN ? AND NOT is_voice_verified) AS awaiting_verification,
			COALESCE(SUM(cod_amount) FILTER (WHERE status IN ?), 0) AS revenue
		FROM parcels`, shipped, shipped).Scan(&row).Error
	if err != nil {
		return ports.ParcelStats{}, err
	}

	return ports.ParcelStats{
		Total:                row.Total,
		AwaitingVerification: row.AwaitingVerification,
		Revenue:              row.Revenue,
	}, nil
}

func (r *GormParcelRepository) missOrConflict(ctx context.Context, id kernel.ParcelID, expected int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", id.Int64()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("parcel", id)
	}
	return errs.NewConcurrentModificationError("parcel", id, expected)
}
