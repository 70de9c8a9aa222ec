package coder

import (
	"bytes"

	"github.com/pkg/errors"
)

const wordSize = 8

var (
	AccountHeadPadding = []byte("serum")
	AccountTailPadding = []byte("padding")
)

// StripPadding validates the head and tail padding of a dex account and
// returns the interior bytes. The returned slice aliases data.
func StripPadding(data []byte) ([]byte, error) {
	headLen, tailLen := len(AccountHeadPadding), len(AccountTailPadding)

	if len(data) < headLen+tailLen {
		return nil, errors.Wrapf(ErrAccountLengthTooSmall, "length %d", len(data))
	}

	if !bytes.Equal(data[:headLen], AccountHeadPadding) {
		return nil, ErrHeadPaddingMismatch
	}

	if !bytes.Equal(data[len(data)-tailLen:], AccountTailPadding) {
		return nil, ErrTailPaddingMismatch
	}

	inner := data[headLen : len(data)-tailLen]
	if len(inner)%wordSize != 0 {
		return nil, errors.Wrapf(ErrTransmuteGuard, "inner length %d is not a multiple of %d", len(inner), wordSize)
	}

	return inner, nil
}

// AddPadding wraps a record in the dex account padding.
func AddPadding(inner []byte) []byte {
	out := make([]byte, 0, len(AccountHeadPadding)+len(inner)+len(AccountTailPadding))
	out = append(out, AccountHeadPadding...)
	out = append(out, inner...)
	return append(out, AccountTailPadding...)
}
