package handler

import (
	"context"
	"net/http"

	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
	"github.com/iqbalbaharum/serum-swap-client/internal/rpc"
	"github.com/pkg/errors"
)

const (
	ErrTimeout = "request timed out"
)

var ErrBadRequest = errors.New("bad request")

var decodeErrors = []error{
	coder.ErrAccountLengthTooSmall,
	coder.ErrHeadPaddingMismatch,
	coder.ErrTailPaddingMismatch,
	coder.ErrTransmuteGuard,
	coder.ErrTransmuteInvalidValue,
	coder.ErrInvalidMarketFlags,
	coder.ErrMarketAddressMismatch,
	coder.ErrVaultSignerDerivation,
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	select {
	case <-r.Context().Done():
		http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		return
	default:
	}

	http.Error(w, err.Error(), statusFor(err))
}

func statusFor(err error) int {
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}

	if errors.Is(err, rpc.ErrAccountNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	for _, target := range decodeErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}

	if errors.Is(err, coder.ErrSerialization) {
		return http.StatusInternalServerError
	}

	return http.StatusBadGateway
}
