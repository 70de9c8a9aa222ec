package types

type AccountMeta struct {
	Pubkey     string `json:"pubkey"`
	IsWritable bool   `json:"isWritable"`
	IsSigner   bool   `json:"isSigner"`
}

// Instruction is the JSON form of an encoded instruction. Data is base58.
type Instruction struct {
	ProgramID string        `json:"programId"`
	Accounts  []AccountMeta `json:"accounts"`
	Data      string        `json:"data"`
}

// Transaction is an unsigned transaction, base64 encoded.
type Transaction struct {
	Transaction string `json:"transaction"`
	Blockhash   string `json:"blockhash"`
}

type InitAccountRequest struct {
	Authority  string `json:"authority"`
	Market     string `json:"market"`
	OpenOrders string `json:"openOrders"`
}

type CloseAccountRequest struct {
	Authority   string `json:"authority"`
	Market      string `json:"market"`
	OpenOrders  string `json:"openOrders"`
	Destination string `json:"destination"`
}

// SwapMarket names a market and the user's accounts on it. The remaining
// market accounts are resolved from the market account itself.
type SwapMarket struct {
	Market                 string `json:"market"`
	OpenOrders             string `json:"openOrders"`
	OrderPayerTokenAccount string `json:"orderPayerTokenAccount"`
	CoinWallet             string `json:"coinWallet"`
}

type SwapRequest struct {
	Authority    string     `json:"authority"`
	PcWallet     string     `json:"pcWallet"`
	Market       SwapMarket `json:"market"`
	Amount       uint64     `json:"amount"`
	Side         string     `json:"side"`
	Rate         uint64     `json:"rate"`
	FromDecimals uint8      `json:"fromDecimals"`
}

type SwapTransitiveRequest struct {
	Authority     string     `json:"authority"`
	PcWallet      string     `json:"pcWallet"`
	From          SwapMarket `json:"from"`
	To            SwapMarket `json:"to"`
	Amount        uint64     `json:"amount"`
	Rate          uint64     `json:"rate"`
	FromDecimals  uint8      `json:"fromDecimals"`
	QuoteDecimals uint8      `json:"quoteDecimals"`
	Strict        bool       `json:"strict"`
}

type SwapTransactionRequest struct {
	SwapRequest
	ComputeUnits  uint32 `json:"computeUnits"`
	MicroLamports uint64 `json:"microLamports"`
}
