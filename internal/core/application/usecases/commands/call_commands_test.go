package commands_test

import (
	"errors"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/verification"
	"shipping/internal/core/domain/model/call"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeCall(t *testing.T, updatedAt time.Time) *call.Call {
	t.Helper()
	c, err := call.RestoreCall(call.Snapshot{
		ID:        kernel.NewCallID(),
		ParcelID:  7,
		UserID:    "demo-001",
		Type:      call.TypeVerification,
		Status:    call.Dialing,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
		Version:   1,
	})
	require.NoError(t, err)
	return c
}

func TestFailStaleCallsCommandHandler_FailsOnlyStaleCalls(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewFailStaleCallsCommand(2 * time.Minute)
	require.NoError(t, err)

	stale := activeCall(t, time.Now().Add(-time.Hour))
	fresh := activeCall(t, time.Now())

	mockRepo := new(MockCallRepository)
	mockUoW := new(MockCallUoW)
	mockFactory := new(MockCallUoWFactory)
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("CallRepository").Return(mockRepo).Once(),
		mockRepo.On("ListActive", ctx).Return([]*call.Call{stale, fresh}, nil).Once(),
		mockRepo.On("Update", ctx, stale).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	// Act
	failed, err := commands.NewFailStaleCallsCommandHandler(mockFactory).Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Equal(t, call.Failed, stale.Status())
	assert.Equal(t, call.Dialing, fresh.Status())
	mockRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestFailStaleCallsCommandHandler_NothingStaleSkipsCommit(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewFailStaleCallsCommand(time.Minute)
	require.NoError(t, err)

	mockRepo := new(MockCallRepository)
	mockUoW := new(MockCallUoW)
	mockFactory := new(MockCallUoWFactory)
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CallRepository").Return(mockRepo).Once()
	mockRepo.On("ListActive", ctx).Return([]*call.Call{}, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	failed, err := commands.NewFailStaleCallsCommandHandler(mockFactory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, failed)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewFailStaleCallsCommand_RequiresPositiveTimeout(t *testing.T) {
	_, err := commands.NewFailStaleCallsCommand(0)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestInitiateVerificationCommandHandler(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewInitiateVerificationCommand(7, "demo-001")
	require.NoError(t, err)

	outcome := verification.Outcome{CallID: kernel.NewCallID(), Verified: true}
	verifier := new(MockVoiceVerifier)
	verifier.On("InitiateVerification", ctx, kernel.ParcelID(7), kernel.UserID("demo-001")).Return(outcome, nil).Once()

	got, err := commands.NewInitiateVerificationCommandHandler(verifier).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, outcome, got)
	verifier.AssertExpectations(t)
}

func TestInitiateVerificationCommandHandler_InvalidCommand(t *testing.T) {
	verifier := new(MockVoiceVerifier)

	_, err := commands.NewInitiateVerificationCommandHandler(verifier).
		Handle(t.Context(), commands.InitiateVerificationCommand{})

	require.ErrorIs(t, err, commands.ErrInitiateVerificationCommandIsNotConstructed)
	verifier.AssertNotCalled(t, "InitiateVerification", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewReportCallEventCommand(t *testing.T) {
	id := kernel.NewCallID()

	t.Run("should map a completed callback", func(t *testing.T) {
		cmd, err := commands.NewReportCallEventCommand(id.String(), "Completed", 45, "/recordings/a.mp3", "")

		require.NoError(t, err)
		e := cmd.Event()
		assert.True(t, e.CallID.IsEqual(id))
		assert.Equal(t, ports.CallCompleted, e.Kind)
		assert.Equal(t, 45*time.Second, e.Duration)
		assert.Equal(t, "/recordings/a.mp3", e.RecordingURL)
	})

	t.Run("should reject malformed callbacks", func(t *testing.T) {
		_, err := commands.NewReportCallEventCommand("not-a-uuid", "ringing", -1, "", "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestReportCallEventCommandHandler(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReportCallEventCommand(kernel.NewCallID().String(), "failed", 0, "", "busy")
	require.NoError(t, err)

	sink := new(MockCallEventSink)
	sink.On("Notify", ctx, cmd.Event()).Return(errors.New("queue closed")).Once()

	err = commands.NewReportCallEventCommandHandler(sink).Handle(ctx, cmd)

	require.EqualError(t, err, "queue closed")
	sink.AssertExpectations(t)
}
