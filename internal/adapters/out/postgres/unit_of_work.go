// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work wraps one database transaction shared by all
// repositories it hands out, tracks the aggregates they saved and publishes
// their domain events once the transaction is committed.
//
// Usage:
//
//	factory := postgres.NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.ParcelRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns its transaction; goroutines must not share one.
package postgres

import (
	"context"
	"log/slog"

	"shipping/internal/adapters/out/eventbus"
	"shipping/internal/adapters/out/postgres/callrepo"
	"shipping/internal/adapters/out/postgres/merchantrepo"
	"shipping/internal/adapters/out/postgres/parcelrepo"
	"shipping/internal/adapters/out/postgres/profilerepo"
	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

var _ ports.UnitOfWorkFactory = (*GormUnitOfWorkFactory)(nil)

// NewGormUnitOfWorkFactory creates a factory for GORM-based units of work.
// publisher may be nil, in which case recorded events are dropped.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, eventbus.NewLogPublisher(logger), logger)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher, logger: logger}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// saved in it. Repositories obtained before Begin run directly on the pool.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
	collector eventbus.Collector
}

var _ ports.UnitOfWork = (*GormUnitOfWork)(nil)

// Begin initiates a new database transaction. Calling Begin on a unit of work
// that already has an active transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and publishes the events of every
// aggregate saved in it. Returns gorm.ErrInvalidTransaction without Begin.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.collector.Reset()
		return err
	}

	uow.collector.Flush(ctx, uow.publisher, uow.logger)
	return nil
}

// Rollback discards the transaction and the events recorded in it.
// Returns gorm.ErrInvalidTransaction when there is nothing to roll back, which
// makes it safe to defer after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.collector.Reset()
	return err
}

func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProfileRepository() ports.ProfileRepository {
	return profilerepo.NewGormProfileRepository(uow.conn())
}

func (uow *GormUnitOfWork) CallRepository() ports.CallRepository {
	return callrepo.NewGormCallRepository(uow.conn())
}

func (uow *GormUnitOfWork) MerchantRepository() ports.MerchantRepository {
	return merchantrepo.NewGormMerchantRepository(uow.conn())
}

// TrackAggregate registers an aggregate saved within this unit of work so its
// domain events are published after commit.
func (uow *GormUnitOfWork) TrackAggregate(aggregate any) {
	uow.collector.Track(aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// Models lists the DTOs that make up the schema, for AutoMigrate.
func Models() []any {
	return []any{
		&parcelrepo.ParcelDTO{},
		&profilerepo.ProfileDTO{},
		&callrepo.CallDTO{},
		&merchantrepo.MerchantDTO{},
	}
}
