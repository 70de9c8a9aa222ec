package market

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
	"github.com/iqbalbaharum/serum-swap-client/internal/instructions"
	"github.com/iqbalbaharum/serum-swap-client/internal/rpc"
	"github.com/iqbalbaharum/serum-swap-client/internal/storage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Service struct {
	fetcher rpc.AccountFetcher
	cache   storage.MarketKeysCache
	coder   *coder.SerumMarketCoder
	log     *zap.Logger
}

// NewService returns a market keys service. cache may be nil.
func NewService(fetcher rpc.AccountFetcher, dexProgramID solana.PublicKey, cache storage.MarketKeysCache, log *zap.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		coder:   coder.NewSerumMarketCoder(dexProgramID),
		log:     log,
	}
}

// GetMarketKeys returns market keys from the cache if available, otherwise
// fetches the market account, decodes it and stores the derived keys.
//
// Fetch errors are returned as is. Cache errors are logged and never fail
// the call.
func (s *Service) GetMarketKeys(ctx context.Context, address solana.PublicKey) (*coder.MarketPubkeys, error) {
	if s.cache != nil {
		keys, err := s.cache.GetMarketKeys(ctx, address)
		switch {
		case err == nil:
			return keys, nil
		case !errors.Is(err, storage.ErrKeyNotFound):
			s.log.Warn("failed to read market keys cache", zap.Stringer("market", address), zap.Error(err))
		}
	}

	data, err := s.fetcher.GetAccountData(ctx, address)
	if err != nil {
		return nil, err
	}

	keys, err := s.coder.MarketKeys(address, data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode market %s", address)
	}

	s.log.Debug("decoded market keys",
		zap.Stringer("market", address),
		zap.Stringer("vault_signer", keys.VaultSigner))

	if s.cache != nil {
		if err := s.cache.SetMarketKeys(ctx, keys); err != nil {
			s.log.Warn("failed to write market keys cache", zap.Stringer("market", address), zap.Error(err))
		}
	}

	return keys, nil
}

// NewMarketAccounts fills the per-market account block of a swap from the
// derived market keys and the user's accounts on that market.
func NewMarketAccounts(keys *coder.MarketPubkeys, openOrders, orderPayerTokenAccount, coinWallet solana.PublicKey) *instructions.MarketAccounts {
	return &instructions.MarketAccounts{
		Market:                 keys.Market,
		OpenOrders:             openOrders,
		RequestQueue:           keys.RequestQueue,
		EventQueue:             keys.EventQueue,
		Bids:                   keys.Bids,
		Asks:                   keys.Asks,
		OrderPayerTokenAccount: orderPayerTokenAccount,
		CoinVault:              keys.CoinVault,
		PcVault:                keys.PcVault,
		VaultSigner:            keys.VaultSigner,
		CoinWallet:             coinWallet,
	}
}
