package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/types"
	"github.com/mr-tron/base58"
)

func Encode[T any](w http.ResponseWriter, r *http.Request, status int, v T) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func Decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// ParsePublicKeys parses base58 keys, reporting the name of the first
// invalid one.
func ParsePublicKeys(named map[string]string) (map[string]solana.PublicKey, error) {
	out := make(map[string]solana.PublicKey, len(named))
	for name, value := range named {
		pk, err := solana.PublicKeyFromBase58(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		out[name] = pk
	}
	return out, nil
}

func ToInstruction(ins solana.Instruction) (*types.Instruction, error) {
	data, err := ins.Data()
	if err != nil {
		return nil, err
	}

	accounts := make([]types.AccountMeta, 0, len(ins.Accounts()))
	for _, meta := range ins.Accounts() {
		accounts = append(accounts, types.AccountMeta{
			Pubkey:     meta.PublicKey.String(),
			IsWritable: meta.IsWritable,
			IsSigner:   meta.IsSigner,
		})
	}

	return &types.Instruction{
		ProgramID: ins.ProgramID().String(),
		Accounts:  accounts,
		Data:      base58.Encode(data),
	}, nil
}
