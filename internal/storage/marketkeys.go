package storage

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// MarketKeysCache stores derived market keys by market address.
type MarketKeysCache interface {
	GetMarketKeys(ctx context.Context, market solana.PublicKey) (*coder.MarketPubkeys, error)
	SetMarketKeys(ctx context.Context, keys *coder.MarketPubkeys) error
}

// MarketKeysStorage keeps market keys in a redis hash per market. The field
// is namespaced by dex program since the vault signer depends on it.
type MarketKeysStorage struct {
	client       *redis.Client
	dexProgramID solana.PublicKey
}

var _ MarketKeysCache = (*MarketKeysStorage)(nil)

func NewMarketKeysStorage(client *redis.Client, dexProgramID solana.PublicKey) *MarketKeysStorage {
	return &MarketKeysStorage{
		client:       client,
		dexProgramID: dexProgramID,
	}
}

func (s *MarketKeysStorage) field() string {
	return KEY_MARKETKEYS + "::" + s.dexProgramID.String()
}

func (s *MarketKeysStorage) SetMarketKeys(ctx context.Context, keys *coder.MarketPubkeys) error {
	data, err := json.Marshal(keys)
	if err != nil {
		return err
	}

	if err := s.client.HSet(ctx, keys.Market.String(), s.field(), data).Err(); err != nil {
		return errors.Wrapf(err, "set market keys %s", keys.Market)
	}

	return nil
}

func (s *MarketKeysStorage) GetMarketKeys(ctx context.Context, market solana.PublicKey) (*coder.MarketPubkeys, error) {
	data, err := s.client.HGet(ctx, market.String(), s.field()).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "get market keys %s", market)
	}

	var keys coder.MarketPubkeys
	if err := json.Unmarshal([]byte(data), &keys); err != nil {
		return nil, err
	}

	return &keys, nil
}
