package commands_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedParcel(t *testing.T, id kernel.ParcelID, status parcel.Status, verified bool) *parcel.Parcel {
	t.Helper()
	snap := parcel.Snapshot{
		ID:              id,
		UserID:          "demo-001",
		TrackingNumber:  "SF123",
		Status:          status,
		IsVoiceVerified: verified,
		Version:         3,
	}
	if status >= parcel.Weighing {
		kg := 5.0
		snap.WeightKg = &kg
		snap.CodAmount = 6225
	}
	p, err := parcel.RestoreParcel(snap)
	require.NoError(t, err)
	return p
}

func TestNewCreateParcelCommand(t *testing.T) {
	t.Run("should trim input", func(t *testing.T) {
		cmd, err := commands.NewCreateParcelCommand("demo-001", "  SF123 ", " shoes ")

		require.NoError(t, err)
		assert.Equal(t, kernel.UserID("demo-001"), cmd.UserID())
		assert.Equal(t, "SF123", cmd.TrackingNumber())
		assert.Equal(t, "shoes", cmd.Description())
	})

	t.Run("should require a tracking number", func(t *testing.T) {
		_, err := commands.NewCreateParcelCommand("demo-001", "   ", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "trackingNumber")
	})

	t.Run("should bound the description", func(t *testing.T) {
		_, err := commands.NewCreateParcelCommand("demo-001", "SF1", strings.Repeat("x", commands.MaxDescriptionLength+1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should require an owner", func(t *testing.T) {
		_, err := commands.NewCreateParcelCommand("", "SF1", "")

		require.Error(t, err)
	})
}

func TestCreateParcelCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateParcelCommand("demo-001", "SF123", "winter jackets")
	require.NoError(t, err)

	mockRepo := new(MockParcelRepository)
	mockUoW := new(MockParcelUoW)
	mockFactory := new(MockParcelUoWFactory)

	isNewParcel := mock.MatchedBy(func(p *parcel.Parcel) bool {
		return p.Status() == parcel.Registered && p.TrackingNumber() == "SF123" && !p.IsVoiceVerified()
	})
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ParcelRepository").Return(mockRepo).Once(),
		mockRepo.On("Add", ctx, isNewParcel).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCreateParcelCommandHandler(mockFactory)

	// Act
	p, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "winter jackets", p.Description())
	assert.Equal(t, int64(0), p.CodAmount())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_InvalidCommand(t *testing.T) {
	mockFactory := new(MockParcelUoWFactory)
	handler := commands.NewCreateParcelCommandHandler(mockFactory)

	_, err := handler.Handle(t.Context(), commands.CreateParcelCommand{})

	require.ErrorIs(t, err, commands.ErrCreateParcelCommandIsNotConstructed)
	mockFactory.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_BeginTransactionError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateParcelCommand("demo-001", "SF123", "")
	require.NoError(t, err)

	expectedError := errors.New("begin transaction failed")
	mockUoW := new(MockParcelUoW)
	mockFactory := new(MockParcelUoWFactory)
	mock.InOrder(
		mockFactory.On("Create").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(expectedError).Once(),
	)

	_, err = commands.NewCreateParcelCommandHandler(mockFactory).Handle(ctx, cmd)

	assert.Equal(t, expectedError, err)
	mockUoW.AssertExpectations(t)
}

func TestNewRecordWeightCommand(t *testing.T) {
	cmd, err := commands.NewRecordWeightCommand(7, 2.5)
	require.NoError(t, err)
	assert.Equal(t, kernel.ParcelID(7), cmd.ParcelID())
	assert.InDelta(t, 2.5, cmd.Weight().Kg(), 1e-9)

	for _, kg := range []float64{0, -1} {
		_, err = commands.NewRecordWeightCommand(7, kg)
		require.Error(t, err, "weight %v", kg)
	}

	_, err = commands.NewRecordWeightCommand(0, 1)
	require.Error(t, err)
}

func TestRecordWeightCommandHandler_Handle_SetsCodAmount(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewRecordWeightCommand(7, 5)
	require.NoError(t, err)

	received := storedParcel(t, 7, parcel.Received, false)
	mockRepo := new(MockParcelRepository)
	mockUoW := new(MockParcelUoW)
	mockFactory := new(MockParcelUoWFactory)
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ParcelRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, kernel.ParcelID(7)).Return(received, nil).Once(),
		mockRepo.On("Update", ctx, received).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewRecordWeightCommandHandler(mockFactory, services.DefaultTariff())

	// Act
	p, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, parcel.Weighing, p.Status())
	assert.Equal(t, int64(6225), p.CodAmount())
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestRecordWeightCommandHandler_Handle_RejectedStatusWritesNothing(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRecordWeightCommand(7, 5)
	require.NoError(t, err)

	registered := storedParcel(t, 7, parcel.Registered, false)
	mockRepo := new(MockParcelRepository)
	mockUoW := new(MockParcelUoW)
	mockFactory := new(MockParcelUoWFactory)
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ParcelRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, kernel.ParcelID(7)).Return(registered, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	_, err = commands.NewRecordWeightCommandHandler(mockFactory, services.DefaultTariff()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewRequestTransitionCommand(t *testing.T) {
	cmd, err := commands.NewRequestTransitionCommand(7, "ready_to_ship")
	require.NoError(t, err)
	assert.Equal(t, parcel.ReadyToShip, cmd.Target())

	_, err = commands.NewRequestTransitionCommand(7, "lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRequestTransitionCommandHandler_Handle(t *testing.T) {
	testCases := []struct {
		name       string
		current    *parcel.Parcel
		target     string
		wantErr    error
		wantStatus parcel.Status
	}{
		{
			name:       "next status is applied",
			current:    storedParcel(t, 7, parcel.Registered, false),
			target:     "received",
			wantStatus: parcel.Received,
		},
		{
			name:    "unverified parcel cannot become ready to ship",
			current: storedParcel(t, 7, parcel.Checking, false),
			target:  "ready_to_ship",
			wantErr: errs.ErrVerificationRequired,
		},
		{
			name:       "verified parcel becomes ready to ship",
			current:    storedParcel(t, 7, parcel.Checking, true),
			target:     "ready_to_ship",
			wantStatus: parcel.ReadyToShip,
		},
		{
			name:    "skipping a status is rejected",
			current: storedParcel(t, 7, parcel.Registered, false),
			target:  "shipped",
			wantErr: errs.ErrInvalidTransition,
		},
		{
			name:    "moving backwards is rejected",
			current: storedParcel(t, 7, parcel.Shipped, true),
			target:  "checking",
			wantErr: errs.ErrInvalidTransition,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewRequestTransitionCommand(7, tc.target)
			require.NoError(t, err)
			before := tc.current.Status()

			mockRepo := new(MockParcelRepository)
			mockUoW := new(MockParcelUoW)
			mockFactory := new(MockParcelUoWFactory)
			mockFactory.On("Create").Return(mockUoW).Once()
			mockUoW.On("Begin", ctx).Return(nil).Once()
			mockUoW.On("ParcelRepository").Return(mockRepo).Once()
			mockRepo.On("Get", ctx, kernel.ParcelID(7)).Return(tc.current, nil).Once()
			mockUoW.On("Rollback", ctx).Return(nil).Once()
			if tc.wantErr == nil {
				mockRepo.On("Update", ctx, tc.current).Return(nil).Once()
				mockUoW.On("Commit", ctx).Return(nil).Once()
			}

			p, err := commands.NewRequestTransitionCommandHandler(mockFactory).Handle(ctx, cmd)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, before, tc.current.Status())
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, p.Status())
			mockUoW.AssertExpectations(t)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRequestTransitionCommandHandler_Handle_ConcurrentModification(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRequestTransitionCommand(7, "received")
	require.NoError(t, err)

	current := storedParcel(t, 7, parcel.Registered, false)
	conflict := errs.NewConcurrentModificationError("parcel", kernel.ParcelID(7), 3)
	mockRepo := new(MockParcelRepository)
	mockUoW := new(MockParcelUoW)
	mockFactory := new(MockParcelUoWFactory)
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ParcelRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, kernel.ParcelID(7)).Return(current, nil).Once(),
		mockRepo.On("Update", ctx, current).Return(conflict).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	_, err = commands.NewRequestTransitionCommandHandler(mockFactory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	assert.Contains(t, err.Error(), "parcel 7 changed after version 3")
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRequestTransitionCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRequestTransitionCommand(99, "received")
	require.NoError(t, err)

	mockRepo := new(MockParcelRepository)
	mockUoW := new(MockParcelUoW)
	mockFactory := new(MockParcelUoWFactory)
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("ParcelRepository").Return(mockRepo).Once()
	mockRepo.On("Get", ctx, kernel.ParcelID(99)).
		Return((*parcel.Parcel)(nil), errs.NewObjectNotFoundError("parcel", kernel.ParcelID(99))).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	_, err = commands.NewRequestTransitionCommandHandler(mockFactory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewAttachImagesCommand(t *testing.T) {
	cmd, err := commands.NewAttachImagesCommand(7, []string{"https://img.example.com/a.jpg"})
	require.NoError(t, err)
	assert.Len(t, cmd.URLs(), 1)

	_, err = commands.NewAttachImagesCommand(7, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	tooMany := make([]string, commands.MaxImagesPerRequest+1)
	for i := range tooMany {
		tooMany[i] = "https://img.example.com/a.jpg"
	}
	_, err = commands.NewAttachImagesCommand(7, tooMany)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestAttachImagesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAttachImagesCommand(7, []string{"https://img.example.com/a.jpg"})
	require.NoError(t, err)

	checking := storedParcel(t, 7, parcel.Checking, false)
	mockRepo := new(MockParcelRepository)
	mockUoW := new(MockParcelUoW)
	mockFactory := new(MockParcelUoWFactory)
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("ParcelRepository").Return(mockRepo).Once()
	mockRepo.On("Get", ctx, kernel.ParcelID(7)).Return(checking, nil).Once()
	mockRepo.On("Update", ctx, checking).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	p, err := commands.NewAttachImagesCommandHandler(mockFactory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/a.jpg"}, p.Images())
	assert.WithinDuration(t, time.Now(), p.UpdatedAt(), time.Minute)
	mockRepo.AssertExpectations(t)
}
