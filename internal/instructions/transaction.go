package instructions

import (
	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
)

type ComputeUnit struct {
	MicroLamports uint64
	Units         uint32
}

type TxOption struct {
	Blockhash solana.Hash
	Payer     solana.PublicKey
	Compute   ComputeUnit
}

// NewSwapTransaction assembles an unsigned transaction, prepending compute
// budget instructions when requested.
func NewSwapTransaction(options TxOption, swapInstructions ...solana.Instruction) (*solana.Transaction, error) {
	ins := []solana.Instruction{}

	if options.Compute.Units > 0 {
		ins = append(ins, computebudget.NewSetComputeUnitLimitInstruction(options.Compute.Units).Build())
	}

	if options.Compute.MicroLamports > 0 {
		ins = append(ins, computebudget.NewSetComputeUnitPriceInstruction(options.Compute.MicroLamports).Build())
	}

	ins = append(ins, swapInstructions...)

	return solana.NewTransaction(
		ins,
		options.Blockhash,
		solana.TransactionPayer(options.Payer),
	)
}
