package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Setenv("LOG_LEVEL", "error")

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { decodeEncoding = "base58" })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestDecodeCommand(t *testing.T) {
	data, err := coder.EncodeInstructionData(coder.InstructionSwap, coder.Swap{
		Side:            coder.SideAsk,
		Amount:          1,
		MinExchangeRate: coder.ExchangeRate{Rate: 2, FromDecimals: 3},
	})
	require.NoError(t, err)

	out, err := executeCommand(t, "decode", base58.Encode(data))
	require.NoError(t, err)

	var actual struct {
		Instruction string
		Args        coder.Swap
	}
	require.NoError(t, json.Unmarshal([]byte(out), &actual))
	assert.Equal(t, "coder.Swap", actual.Instruction)
	assert.Equal(t, coder.SideAsk, actual.Args.Side)
	assert.EqualValues(t, 1, actual.Args.Amount)
	assert.EqualValues(t, 2, actual.Args.MinExchangeRate.Rate)
}

func TestDecodeCommand_Errors(t *testing.T) {
	_, err := executeCommand(t, "decode", "--encoding", "base64", "AAAAAAAAAAA=")
	assert.ErrorIs(t, err, coder.ErrUnknownInstruction)

	_, err = executeCommand(t, "decode", "--encoding", "hex", "00")
	assert.Error(t, err)
}
