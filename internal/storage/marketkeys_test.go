package storage

import (
	"context"
	"os"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live redis when REDIS_ADDR is set.
func newTestStorage(t *testing.T) *MarketKeysStorage {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())

	return NewMarketKeysStorage(client, solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"))
}

func TestMarketKeysStorage(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	keys := &coder.MarketPubkeys{
		Market:       solana.NewWallet().PublicKey(),
		RequestQueue: solana.NewWallet().PublicKey(),
		EventQueue:   solana.NewWallet().PublicKey(),
		Bids:         solana.NewWallet().PublicKey(),
		Asks:         solana.NewWallet().PublicKey(),
		CoinMint:     solana.NewWallet().PublicKey(),
		CoinVault:    solana.NewWallet().PublicKey(),
		PcMint:       solana.NewWallet().PublicKey(),
		PcVault:      solana.NewWallet().PublicKey(),
		VaultSigner:  solana.NewWallet().PublicKey(),
	}
	t.Cleanup(func() { s.client.Del(ctx, keys.Market.String()) })

	_, err := s.GetMarketKeys(ctx, keys.Market)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.SetMarketKeys(ctx, keys))

	actual, err := s.GetMarketKeys(ctx, keys.Market)
	require.NoError(t, err)
	assert.Equal(t, keys, actual)

	// Another dex program does not see the entry.
	other := NewMarketKeysStorage(s.client, solana.MustPublicKeyFromBase58("srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX"))
	_, err = other.GetMarketKeys(ctx, keys.Market)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
