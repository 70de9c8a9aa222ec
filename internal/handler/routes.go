package handler

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
	"github.com/iqbalbaharum/serum-swap-client/internal/instructions"
	"go.uber.org/zap"
)

type MarketKeysProvider interface {
	GetMarketKeys(ctx context.Context, address solana.PublicKey) (*coder.MarketPubkeys, error)
}

type BlockhashProvider interface {
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
}

type Dependencies struct {
	Markets    MarketKeysProvider
	Blockhash  BlockhashProvider
	Programs   instructions.Programs
	Generation instructions.Generation
	Log        *zap.Logger
}

func CreateRoutes(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	var MarketHandler = NewMarketHandler(deps)
	var InstructionHandler = NewInstructionHandler(deps)

	r.Route("/markets", func(r chi.Router) {
		r.Get("/{address}", MarketHandler.Get)
	})

	r.Route("/instructions", func(r chi.Router) {
		r.Post("/init-account", InstructionHandler.InitAccount)
		r.Post("/close-account", InstructionHandler.CloseAccount)
		r.Post("/swap", InstructionHandler.Swap)
		r.Post("/swap-transitive", InstructionHandler.SwapTransitive)
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Post("/swap", InstructionHandler.SwapTransaction)
	})

	return r
}
