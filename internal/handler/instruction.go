package handler

import (
	"context"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
	"github.com/iqbalbaharum/serum-swap-client/internal/instructions"
	"github.com/iqbalbaharum/serum-swap-client/internal/market"
	"github.com/iqbalbaharum/serum-swap-client/internal/types"
	"github.com/iqbalbaharum/serum-swap-client/internal/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type instructionHandler struct {
	markets    MarketKeysProvider
	blockhash  BlockhashProvider
	programs   instructions.Programs
	generation instructions.Generation
	log        *zap.Logger
}

func NewInstructionHandler(deps Dependencies) *instructionHandler {
	return &instructionHandler{
		markets:    deps.Markets,
		blockhash:  deps.Blockhash,
		programs:   deps.Programs,
		generation: deps.Generation,
		log:        deps.Log,
	}
}

func (h *instructionHandler) InitAccount(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Decode[types.InitAccountRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	keys, err := parseKeys(map[string]string{
		"authority":  req.Authority,
		"market":     req.Market,
		"openOrders": req.OpenOrders,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	ins := instructions.NewInitAccountInstruction(h.programs, keys["authority"], keys["market"], keys["openOrders"])
	h.respond(w, r, ins)
}

func (h *instructionHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Decode[types.CloseAccountRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	keys, err := parseKeys(map[string]string{
		"authority":   req.Authority,
		"market":      req.Market,
		"openOrders":  req.OpenOrders,
		"destination": req.Destination,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	ins := instructions.NewCloseAccountInstruction(h.programs, keys["authority"], keys["market"], keys["openOrders"], keys["destination"])
	h.respond(w, r, ins)
}

func (h *instructionHandler) Swap(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Decode[types.SwapRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ins, err := h.buildSwap(r.Context(), req)
	if err != nil {
		h.log.Error("failed to build swap", zap.String("market", req.Market.Market), zap.Error(err))
		writeError(w, r, err)
		return
	}

	h.respond(w, r, ins)
}

func (h *instructionHandler) SwapTransitive(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Decode[types.SwapTransitiveRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	keys, err := parseKeys(map[string]string{
		"authority": req.Authority,
		"pcWallet":  req.PcWallet,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	from, err := h.resolveMarket(r.Context(), req.From)
	if err != nil {
		h.log.Error("failed to resolve from market", zap.String("market", req.From.Market), zap.Error(err))
		writeError(w, r, err)
		return
	}

	to, err := h.resolveMarket(r.Context(), req.To)
	if err != nil {
		h.log.Error("failed to resolve to market", zap.String("market", req.To.Market), zap.Error(err))
		writeError(w, r, err)
		return
	}

	ins, err := instructions.NewSwapTransitiveInstruction(
		h.programs,
		h.generation,
		keys["authority"],
		keys["pcWallet"],
		from,
		to,
		req.Amount,
		req.Rate,
		req.FromDecimals,
		req.QuoteDecimals,
		req.Strict,
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, r, ins)
}

// SwapTransaction builds an unsigned swap transaction paid by the authority.
func (h *instructionHandler) SwapTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Decode[types.SwapTransactionRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ins, err := h.buildSwap(r.Context(), req.SwapRequest)
	if err != nil {
		h.log.Error("failed to build swap", zap.String("market", req.Market.Market), zap.Error(err))
		writeError(w, r, err)
		return
	}

	blockhash, err := h.blockhash.GetLatestBlockhash(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := instructions.NewSwapTransaction(instructions.TxOption{
		Blockhash: blockhash,
		Payer:     solana.MustPublicKeyFromBase58(req.Authority),
		Compute: instructions.ComputeUnit{
			Units:         req.ComputeUnits,
			MicroLamports: req.MicroLamports,
		},
	}, ins)
	if err != nil {
		writeError(w, r, errors.Wrap(coder.ErrSerialization, err.Error()))
		return
	}

	// Zeroed signature slots are filled in by the signer.
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)

	encoded, err := tx.ToBase64()
	if err != nil {
		writeError(w, r, errors.Wrap(coder.ErrSerialization, err.Error()))
		return
	}

	utils.Encode(w, r, http.StatusOK, &types.Transaction{
		Transaction: encoded,
		Blockhash:   blockhash.String(),
	})
}

func (h *instructionHandler) buildSwap(ctx context.Context, req types.SwapRequest) (*instructions.Instruction, error) {
	keys, err := parseKeys(map[string]string{
		"authority": req.Authority,
		"pcWallet":  req.PcWallet,
	})
	if err != nil {
		return nil, err
	}

	side, err := coder.ParseSide(req.Side)
	if err != nil {
		return nil, errors.Wrap(ErrBadRequest, err.Error())
	}

	marketAccounts, err := h.resolveMarket(ctx, req.Market)
	if err != nil {
		return nil, err
	}

	return instructions.NewSwapInstruction(
		h.programs,
		h.generation,
		keys["authority"],
		keys["pcWallet"],
		marketAccounts,
		req.Amount,
		side,
		req.Rate,
		req.FromDecimals,
	)
}

func (h *instructionHandler) resolveMarket(ctx context.Context, m types.SwapMarket) (*instructions.MarketAccounts, error) {
	keys, err := parseKeys(map[string]string{
		"market":                 m.Market,
		"openOrders":             m.OpenOrders,
		"orderPayerTokenAccount": m.OrderPayerTokenAccount,
		"coinWallet":             m.CoinWallet,
	})
	if err != nil {
		return nil, err
	}

	marketKeys, err := h.markets.GetMarketKeys(ctx, keys["market"])
	if err != nil {
		return nil, err
	}

	return market.NewMarketAccounts(marketKeys, keys["openOrders"], keys["orderPayerTokenAccount"], keys["coinWallet"]), nil
}

func (h *instructionHandler) respond(w http.ResponseWriter, r *http.Request, ins solana.Instruction) {
	out, err := utils.ToInstruction(ins)
	if err != nil {
		h.log.Error("failed to serialize instruction", zap.Error(err))
		writeError(w, r, err)
		return
	}

	utils.Encode(w, r, http.StatusOK, out)
}

func parseKeys(named map[string]string) (map[string]solana.PublicKey, error) {
	keys, err := utils.ParsePublicKeys(named)
	if err != nil {
		return nil, errors.Wrap(ErrBadRequest, err.Error())
	}
	return keys, nil
}
