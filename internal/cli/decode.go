package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var decodeEncoding string

var decodeCmd = &cobra.Command{
	Use:   "decode <data>",
	Short: "Decode swap program instruction data",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVar(&decodeEncoding, "encoding", "base58", "encoding of <data>: base58 or base64")
}

func runDecode(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)

	switch decodeEncoding {
	case "base58":
		data, err = base58.Decode(args[0])
	case "base64":
		data, err = base64.StdEncoding.DecodeString(args[0])
	default:
		return errors.Errorf("unknown encoding %q", decodeEncoding)
	}
	if err != nil {
		return errors.Wrap(err, "invalid instruction data")
	}

	decoded, err := coder.NewSerumSwapInstructionCoder().Decode(data)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"instruction": fmt.Sprintf("%T", decoded),
		"args":        decoded,
	})
}
