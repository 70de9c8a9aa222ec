package instructions

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
)

// NewInitAccountInstruction initializes an open orders account owned by
// authority on market.
func NewInitAccountInstruction(programs Programs, authority, market, openOrders solana.PublicKey) *Instruction {
	accountMetas := []*solana.AccountMeta{
		solana.Meta(openOrders).WRITE(),
		solana.Meta(authority).SIGNER(),
		solana.Meta(market),
		solana.Meta(programs.Dex),
		solana.Meta(solana.SysVarRentPubkey),
	}

	return newInstruction(programs.Swap, coder.InstructionInitAccount, coder.InitAccount{}, accountMetas)
}

// NewCloseAccountInstruction closes an open orders account and sends its
// lamports to destination.
func NewCloseAccountInstruction(programs Programs, authority, market, openOrders, destination solana.PublicKey) *Instruction {
	accountMetas := []*solana.AccountMeta{
		solana.Meta(openOrders).WRITE(),
		solana.Meta(authority).SIGNER(),
		solana.Meta(destination).WRITE(),
		solana.Meta(market),
		solana.Meta(programs.Dex),
	}

	return newInstruction(programs.Swap, coder.InstructionCloseAccount, coder.CloseAccount{}, accountMetas)
}
