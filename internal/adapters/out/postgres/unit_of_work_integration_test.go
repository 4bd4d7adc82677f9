package postgres_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	postgres_adapter "shipping/internal/adapters/out/postgres"
	"shipping/internal/core/domain/model/call"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/merchant"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/domain/model/profile"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// UnitOfWorkIntegrationTestSuite exercises transactions, optimistic
// versioning and event publishing against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *MockPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(postgres_adapter.Models()...))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, profiles, calls, merchants RESTART IDENTITY").Error
	suite.Require().NoError(err)

	suite.publisher = new(MockPublisher)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, slog.Default())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAndPublishes() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []kernel.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == parcel.EventCreated
	})).Return(nil).Once()

	p, err := parcel.NewParcel("demo-001", "SF1", "", now)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	_, err = suite.factory.Create().ParcelRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndEvents() {
	ctx := context.Background()
	p, _ := parcel.NewParcel("demo-001", "SF1", "", now)
	prof, _ := profile.NewProfile("demo-001", now)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.ProfileRepository().Add(ctx, prof))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().ParcelRepository().Get(ctx, p.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.factory.Create().ProfileRepository().Get(ctx, "demo-001")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentWriters_ExactlyOneWins() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	p, _ := parcel.NewParcel("demo-001", "SF1", "", now)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	const writers = 5
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for range writers {
		loaded, err := suite.factory.Create().ParcelRepository().Get(ctx, p.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(loaded.Receive(now))

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			w := suite.factory.Create()
			if err := w.Begin(ctx); err != nil {
				return
			}
			defer func() {
				_ = w.Rollback(ctx)
			}()

			err := w.ParcelRepository().Update(ctx, loaded)
			if err == nil {
				err = w.Commit(ctx)
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrConcurrentModification):
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	suite.Equal(1, succeeded)
	suite.Equal(writers-1, conflicts)

	stored, err := suite.factory.Create().ParcelRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.Received, stored.Status())
	suite.Equal(int64(2), stored.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestProfiles() {
	ctx := context.Background()
	prof, _ := profile.NewProfile("demo-001", now)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProfileRepository().Add(ctx, prof))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(suite.factory.Create().ProfileRepository().Add(ctx, prof), errs.ErrValueIsInvalid)

	phone := "+91 98765 43210"
	suite.Require().NoError(prof.UpdateContact(profile.Contact{PhoneNumber: &phone}, now))
	suite.Require().NoError(suite.factory.Create().ProfileRepository().Update(ctx, prof))

	got, err := suite.factory.Create().ProfileRepository().Get(ctx, "demo-001")
	suite.Require().NoError(err)
	suite.Equal(phone, got.PhoneNumber())
	suite.Equal(profile.DefaultTrustScore, got.TrustScore())
	suite.Equal(profile.WarehouseAddress("demo-001"), got.WarehouseAddress())

	missing, _ := profile.NewProfile("nobody", now)
	suite.Require().ErrorIs(suite.factory.Create().ProfileRepository().Update(ctx, missing), errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCalls() {
	ctx := context.Background()
	active, _ := call.NewVerificationCall(1, "demo-001", now)
	suite.Require().NoError(active.Dial(now))
	idle, _ := call.NewVerificationCall(2, "demo-001", now)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CallRepository().Add(ctx, active))
	suite.Require().NoError(uow.CallRepository().Add(ctx, idle))
	suite.Require().NoError(uow.Commit(ctx))

	calls, err := suite.factory.Create().CallRepository().ListActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(calls, 1)
	suite.True(calls[0].ID().IsEqual(active.ID()))

	stale, err := suite.factory.Create().CallRepository().Get(ctx, active.ID())
	suite.Require().NoError(err)

	loaded := calls[0]
	suite.Require().NoError(loaded.Complete(45*time.Second, "/recordings/a.mp3", now))
	suite.Require().NoError(suite.factory.Create().CallRepository().Update(ctx, loaded))

	suite.Require().NoError(stale.Fail("late", now))
	suite.Require().ErrorIs(suite.factory.Create().CallRepository().Update(ctx, stale), errs.ErrConcurrentModification)

	got, err := suite.factory.Create().CallRepository().Get(ctx, active.ID())
	suite.Require().NoError(err)
	suite.Equal(call.Completed, got.Status())
	suite.Equal(45*time.Second, got.Duration())
	suite.Equal("/recordings/a.mp3", got.RecordingURL())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCalls_OneActiveAttemptPerParcel() {
	ctx := context.Background()
	first, _ := call.NewVerificationCall(1, "demo-001", now)
	suite.Require().NoError(first.Dial(now))
	suite.Require().NoError(suite.factory.Create().CallRepository().Add(ctx, first))

	active, err := suite.factory.Create().CallRepository().HasActive(ctx, 1)
	suite.Require().NoError(err)
	suite.True(active)

	second, _ := call.NewVerificationCall(1, "demo-001", now)
	suite.Require().NoError(second.Dial(now))
	err = suite.factory.Create().CallRepository().Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVerificationInProgress)

	// A finished attempt frees the parcel for the next one.
	suite.Require().NoError(first.Fail("no answer", now))
	suite.Require().NoError(suite.factory.Create().CallRepository().Update(ctx, first))
	suite.Require().NoError(suite.factory.Create().CallRepository().Add(ctx, second))

	active, err = suite.factory.Create().CallRepository().HasActive(ctx, 2)
	suite.Require().NoError(err)
	suite.False(active)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMerchants() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	for _, m := range merchant.Seed() {
		suite.Require().NoError(uow.MerchantRepository().Add(ctx, m))
	}
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().MerchantRepository()
	count, err := repo.Count(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(4), count)

	list, err := repo.List(ctx)
	suite.Require().NoError(err)
	suite.Equal("FashionTrend", list[0].Name())
	suite.Equal(int64(1), list[0].ID())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
