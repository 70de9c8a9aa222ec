package cli

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/config"
	"github.com/iqbalbaharum/serum-swap-client/internal/rpc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market <address>",
	Short: "Fetch a market account and print its derived keys",
	Long: `Market fetches the market account from RPC_HTTP_URL, validates it and
prints the derived market keys as JSON, including the vault signer.

Example:
    serum-swap market 9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT`,
	Args: cobra.ExactArgs(1),
	RunE: runMarket,
}

func init() {
	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	address, err := solana.PublicKeyFromBase58(args[0])
	if err != nil {
		return errors.Wrap(err, "invalid market address")
	}

	markets, cleanup, err := newMarketService(cmd.Context(), rpc.NewClient(config.RpcHttpUrl))
	defer cleanup()
	if err != nil {
		return err
	}

	keys, err := markets.GetMarketKeys(cmd.Context(), address)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(keys)
}
