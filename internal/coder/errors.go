package coder

import "github.com/pkg/errors"

var (
	ErrAccountLengthTooSmall = errors.New("dex account length is too small to contain valid padding")
	ErrHeadPaddingMismatch   = errors.New("dex account head padding mismatch")
	ErrTailPaddingMismatch   = errors.New("dex account tail padding mismatch")

	// ErrTransmuteGuard is returned when the data does not respect the
	// boundaries of the target record (wrong size or not word sized).
	ErrTransmuteGuard = errors.New("data does not respect the target type's boundaries")

	// ErrTransmuteInvalidValue is returned when a decoded field holds a value
	// outside its valid domain.
	ErrTransmuteInvalidValue = errors.New("data contains an invalid value for the target type")

	ErrInvalidMarketFlags    = errors.New("invalid market flags")
	ErrMarketAddressMismatch = errors.New("market own address does not match fetched address")
	ErrVaultSignerDerivation = errors.New("unable to derive vault signer")

	ErrUnknownInstruction = errors.New("unknown instruction discriminator")
	ErrSerialization      = errors.New("unable to serialize instruction arguments")
)
