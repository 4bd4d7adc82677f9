package commands_test

import (
	"context"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/verification"
	"shipping/internal/core/domain/model/call"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/merchant"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/domain/model/profile"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockTx struct {
	mock.Mock
}

func (m *MockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Parcel

type MockParcelRepository struct {
	mock.Mock
}

func (m *MockParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.ParcelID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) Stats(ctx context.Context) (ports.ParcelStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.ParcelStats), args.Error(1)
}

type MockParcelUoW struct {
	MockTx
}

func (m *MockParcelUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

type MockParcelUoWFactory struct {
	mock.Mock
}

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

// Profile

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Add(ctx context.Context, aggregate *profile.Profile) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, aggregate *profile.Profile) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProfileRepository) Get(ctx context.Context, userID kernel.UserID) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*profile.Profile), args.Error(1)
}

type MockProfileUoW struct {
	MockTx
}

func (m *MockProfileUoW) ProfileRepository() ports.ProfileRepository {
	args := m.Called()
	return args.Get(0).(ports.ProfileRepository)
}

type MockProfileUoWFactory struct {
	mock.Mock
}

func (m *MockProfileUoWFactory) Create() commands.ProfileUoW {
	args := m.Called()
	return args.Get(0).(commands.ProfileUoW)
}

// Call

type MockCallRepository struct {
	mock.Mock
}

func (m *MockCallRepository) Add(ctx context.Context, aggregate *call.Call) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCallRepository) Update(ctx context.Context, aggregate *call.Call) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCallRepository) Get(ctx context.Context, id kernel.CallID) (*call.Call, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*call.Call), args.Error(1)
}

func (m *MockCallRepository) ListActive(ctx context.Context) ([]*call.Call, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*call.Call), args.Error(1)
}

func (m *MockCallRepository) HasActive(ctx context.Context, parcelID kernel.ParcelID) (bool, error) {
	args := m.Called(ctx, parcelID)
	return args.Bool(0), args.Error(1)
}

type MockCallUoW struct {
	MockTx
}

func (m *MockCallUoW) CallRepository() ports.CallRepository {
	args := m.Called()
	return args.Get(0).(ports.CallRepository)
}

type MockCallUoWFactory struct {
	mock.Mock
}

func (m *MockCallUoWFactory) Create() commands.CallUoW {
	args := m.Called()
	return args.Get(0).(commands.CallUoW)
}

// Merchant

type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) Add(ctx context.Context, aggregate *merchant.Merchant) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMerchantRepository) List(ctx context.Context) ([]*merchant.Merchant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*merchant.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockMerchantUoW struct {
	MockTx
}

func (m *MockMerchantUoW) MerchantRepository() ports.MerchantRepository {
	args := m.Called()
	return args.Get(0).(ports.MerchantRepository)
}

type MockMerchantUoWFactory struct {
	mock.Mock
}

func (m *MockMerchantUoWFactory) Create() commands.MerchantUoW {
	args := m.Called()
	return args.Get(0).(commands.MerchantUoW)
}

// Verification

type MockVoiceVerifier struct {
	mock.Mock
}

func (m *MockVoiceVerifier) InitiateVerification(
	ctx context.Context,
	parcelID kernel.ParcelID,
	userID kernel.UserID,
) (verification.Outcome, error) {
	args := m.Called(ctx, parcelID, userID)
	return args.Get(0).(verification.Outcome), args.Error(1)
}

type MockCallEventSink struct {
	mock.Mock
}

func (m *MockCallEventSink) Notify(ctx context.Context, event ports.CallEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
