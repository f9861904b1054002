package contract

import "github.com/pkg/errors"

var (
	// ErrPhase is returned when an operation is invoked outside its window.
	ErrPhase = errors.New("ErrPhase")
	// ErrAuthorization is returned when the sender may not perform the operation.
	ErrAuthorization = errors.New("ErrAuthorization")
	// ErrNoCommitment is returned by a reveal from an identity that never guessed.
	ErrNoCommitment = errors.New("ErrNoCommitment")
	// ErrAnswerMismatch is returned when the revealed answer does not hash to
	// the revealer's own commitment.
	ErrAnswerMismatch = errors.New("ErrAnswerMismatch")
	// ErrNotAMatch is returned when the revealer's commitment differs from the
	// creator's.
	ErrNotAMatch = errors.New("ErrNotAMatch")
	// ErrNotWinner is returned by a claim from an identity not in the winners.
	ErrNotWinner = errors.New("ErrNotWinner")
	// ErrAlreadyClaimed is returned by a second claim of the same identity.
	ErrAlreadyClaimed = errors.New("ErrAlreadyClaimed")

	ErrGameNotFound       = errors.New("ErrGameNotFound")
	ErrGameExists         = errors.New("ErrGameExists")
	ErrInvalidArgs        = errors.New("ErrInvalidArgs")
	ErrAllowance          = errors.New("ErrAllowance")
	ErrPayoutExceedsPrize = errors.New("ErrPayoutExceedsPrize")
	ErrUnknownAction      = errors.New("ErrUnknownAction")
	ErrCorruptState       = errors.New("ErrCorruptState")
)
