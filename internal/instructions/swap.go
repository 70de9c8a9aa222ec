package instructions

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
)

// MarketAccounts are the accounts of one market taking part in a swap.
type MarketAccounts struct {
	Market       solana.PublicKey
	OpenOrders   solana.PublicKey
	RequestQueue solana.PublicKey
	EventQueue   solana.PublicKey
	Bids         solana.PublicKey
	Asks         solana.PublicKey

	// Token account funds are taken from. For bids this is the quote
	// currency, for asks the base.
	OrderPayerTokenAccount solana.PublicKey

	CoinVault   solana.PublicKey
	PcVault     solana.PublicKey
	VaultSigner solana.PublicKey

	// User wallet for the base currency.
	CoinWallet solana.PublicKey
}

const MarketAccountsLen = 11

func (market *MarketAccounts) accountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.Meta(market.Market).WRITE(),
		solana.Meta(market.OpenOrders).WRITE(),
		solana.Meta(market.RequestQueue).WRITE(),
		solana.Meta(market.EventQueue).WRITE(),
		solana.Meta(market.Bids).WRITE(),
		solana.Meta(market.Asks).WRITE(),
		solana.Meta(market.OrderPayerTokenAccount).WRITE(),
		solana.Meta(market.CoinVault).WRITE(),
		solana.Meta(market.PcVault).WRITE(),
		solana.Meta(market.VaultSigner),
		solana.Meta(market.CoinWallet).WRITE(),
	}
}

func sharedAccountMetas(programs Programs, generation Generation, authority, pcWallet solana.PublicKey) ([]*solana.AccountMeta, error) {
	tail, err := generation.tailAccounts()
	if err != nil {
		return nil, err
	}

	accountMetas := []*solana.AccountMeta{
		solana.Meta(authority).SIGNER(),
		solana.Meta(pcWallet).WRITE(),
		solana.Meta(programs.Dex),
	}

	return append(accountMetas, tail...), nil
}

// NewSwapInstruction swaps on a single market. The minimum exchange rate is
// always sent with zero quote decimals and strict disabled.
func NewSwapInstruction(
	programs Programs,
	generation Generation,
	authority solana.PublicKey,
	pcWallet solana.PublicKey,
	market *MarketAccounts,
	amount uint64,
	side coder.Side,
	rate uint64,
	fromDecimals uint8,
) (*Instruction, error) {
	shared, err := sharedAccountMetas(programs, generation, authority, pcWallet)
	if err != nil {
		return nil, err
	}

	accountMetas := append(market.accountMetas(), shared...)

	args := coder.Swap{
		Side:   side,
		Amount: amount,
		MinExchangeRate: coder.ExchangeRate{
			Rate:          rate,
			FromDecimals:  fromDecimals,
			QuoteDecimals: 0,
			Strict:        false,
		},
	}

	return newInstruction(programs.Swap, coder.InstructionSwap, args, accountMetas), nil
}

// NewSwapTransitiveInstruction swaps from one market into another through
// their common quote currency.
func NewSwapTransitiveInstruction(
	programs Programs,
	generation Generation,
	authority solana.PublicKey,
	pcWallet solana.PublicKey,
	from *MarketAccounts,
	to *MarketAccounts,
	amount uint64,
	rate uint64,
	fromDecimals uint8,
	quoteDecimals uint8,
	strict bool,
) (*Instruction, error) {
	shared, err := sharedAccountMetas(programs, generation, authority, pcWallet)
	if err != nil {
		return nil, err
	}

	accountMetas := make([]*solana.AccountMeta, 0, 2*MarketAccountsLen+len(shared))
	accountMetas = append(accountMetas, from.accountMetas()...)
	accountMetas = append(accountMetas, to.accountMetas()...)
	accountMetas = append(accountMetas, shared...)

	args := coder.SwapTransitive{
		Amount: amount,
		MinExchangeRate: coder.ExchangeRate{
			Rate:          rate,
			FromDecimals:  fromDecimals,
			QuoteDecimals: quoteDecimals,
			Strict:        strict,
		},
	}

	return newInstruction(programs.Swap, coder.InstructionSwapTransitive, args, accountMetas), nil
}
