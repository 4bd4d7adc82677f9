package commands

import (
	"context"
	"errors"

	"shipping/internal/core/application/verification"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrInitiateVerificationCommandIsNotConstructed = errors.New(
	"InitiateVerificationCommand must be created via NewInitiateVerificationCommand constructor",
)

// InitiateVerificationCommand asks for a voice confirmation of a COD parcel
// on behalf of its owner.
type InitiateVerificationCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.ParcelID
	userID   kernel.UserID

	guard guard.ConstructorGuard
}

func NewInitiateVerificationCommand(parcelID kernel.ParcelID, userID kernel.UserID) (InitiateVerificationCommand, error) {
	if err := errors.Join(parcelID.Validate(), userID.Validate()); err != nil {
		return InitiateVerificationCommand{}, err
	}

	return InitiateVerificationCommand{
		parcelID: parcelID,
		userID:   userID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c InitiateVerificationCommand) Validate() error {
	return c.guard.Validate(ErrInitiateVerificationCommandIsNotConstructed)
}

func (c InitiateVerificationCommand) ParcelID() kernel.ParcelID {
	return c.parcelID
}

func (c InitiateVerificationCommand) UserID() kernel.UserID {
	return c.userID
}

// VoiceVerifier runs one verification attempt to completion.
type VoiceVerifier interface {
	InitiateVerification(ctx context.Context, parcelID kernel.ParcelID, userID kernel.UserID) (verification.Outcome, error)
}

// InitiateVerificationCommandHandler blocks until the call finished. The
// request context bounds the wait: cancelling it abandons the attempt.
type InitiateVerificationCommandHandler struct {
	verifier VoiceVerifier
}

func NewInitiateVerificationCommandHandler(verifier VoiceVerifier) InitiateVerificationCommandHandler {
	return InitiateVerificationCommandHandler{
		verifier: verifier,
	}
}

func (h InitiateVerificationCommandHandler) Handle(
	ctx context.Context,
	cmd InitiateVerificationCommand,
) (verification.Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return verification.Outcome{}, err
	}

	return h.verifier.InitiateVerification(ctx, cmd.ParcelID(), cmd.UserID())
}
