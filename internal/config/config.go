package config

import (
	"io/fs"
	"os"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/instructions"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

var (
	SERUM_DEX_V3 = solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	SERUM_SWAP   = solana.MustPublicKeyFromBase58("22Y43yTVxuUkoRKdm9thyRhQ3SdgQS7c7kB6UNCiaczD")
	OPENBOOK_ID  = solana.MustPublicKeyFromBase58("srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX")
)

const (
	DefaultRpcHttpUrl = "https://api.mainnet-beta.solana.com"
	DefaultHttpPort   = 5000
)

var (
	RpcHttpUrl    string
	SwapProgramID solana.PublicKey
	DexProgramID  solana.PublicKey
	Generation    instructions.Generation
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	HttpPort      int
	LogLevel      string
)

func InitEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "load .env")
	}

	var err error

	RpcHttpUrl = getEnv("RPC_HTTP_URL", DefaultRpcHttpUrl)

	SwapProgramID, err = publicKeyEnv("SWAP_PROGRAM_ID", SERUM_SWAP)
	if err != nil {
		return err
	}

	DexProgramID, err = publicKeyEnv("DEX_PROGRAM_ID", SERUM_DEX_V3)
	if err != nil {
		return err
	}

	Generation, err = instructions.ParseGeneration(os.Getenv("SWAP_GENERATION"))
	if err != nil {
		return err
	}

	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisPassword = os.Getenv("REDIS_PASSWORD")

	RedisDB, err = intEnv("REDIS_DB", 0)
	if err != nil {
		return err
	}

	HttpPort, err = intEnv("HTTP_PORT", DefaultHttpPort)
	if err != nil {
		return err
	}

	LogLevel = getEnv("LOG_LEVEL", "info")

	return nil
}

func Programs() instructions.Programs {
	return instructions.Programs{
		Swap: SwapProgramID,
		Dex:  DexProgramID,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func publicKeyEnv(key string, fallback solana.PublicKey) (solana.PublicKey, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	pk, err := solana.PublicKeyFromBase58(v)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "invalid %s", key)
	}
	return pk, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return i, nil
}
