package handler

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"github.com/iqbalbaharum/serum-swap-client/internal/utils"
	"go.uber.org/zap"
)

type marketHandler struct {
	markets MarketKeysProvider
	log     *zap.Logger
}

func NewMarketHandler(deps Dependencies) *marketHandler {
	return &marketHandler{
		markets: deps.Markets,
		log:     deps.Log,
	}
}

func (h *marketHandler) Get(w http.ResponseWriter, r *http.Request) {
	address, err := solana.PublicKeyFromBase58(chi.URLParam(r, "address"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	keys, err := h.markets.GetMarketKeys(r.Context(), address)
	if err != nil {
		h.log.Error("failed to get market keys", zap.Stringer("market", address), zap.Error(err))
		writeError(w, r, err)
		return
	}

	utils.Encode(w, r, http.StatusOK, keys)
}
