package storage

import (
	"github.com/gagliardetto/solana-go"
	"github.com/redis/go-redis/v9"
)

var (
	MarketKeys *MarketKeysStorage
)

func Init(client *redis.Client, dexProgramID solana.PublicKey) {
	MarketKeys = NewMarketKeysStorage(client, dexProgramID)
}
