package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-swap-client/internal/coder"
	"github.com/iqbalbaharum/serum-swap-client/internal/instructions"
	"github.com/iqbalbaharum/serum-swap-client/internal/rpc"
	"github.com/iqbalbaharum/serum-swap-client/internal/types"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testPrograms = instructions.Programs{
	Swap: solana.MustPublicKeyFromBase58("22Y43yTVxuUkoRKdm9thyRhQ3SdgQS7c7kB6UNCiaczD"),
	Dex:  solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"),
}

type fakeMarkets struct {
	keys map[solana.PublicKey]*coder.MarketPubkeys
	err  error
}

func (f *fakeMarkets) GetMarketKeys(_ context.Context, address solana.PublicKey) (*coder.MarketPubkeys, error) {
	if f.err != nil {
		return nil, f.err
	}
	keys, ok := f.keys[address]
	if !ok {
		return nil, errors.Wrapf(rpc.ErrAccountNotFound, "account %s", address)
	}
	return keys, nil
}

type fakeBlockhash struct {
	hash solana.Hash
}

func (f *fakeBlockhash) GetLatestBlockhash(context.Context) (solana.Hash, error) {
	return f.hash, nil
}

func newTestMarketKeys() *coder.MarketPubkeys {
	return &coder.MarketPubkeys{
		Market:       solana.NewWallet().PublicKey(),
		RequestQueue: solana.NewWallet().PublicKey(),
		EventQueue:   solana.NewWallet().PublicKey(),
		Bids:         solana.NewWallet().PublicKey(),
		Asks:         solana.NewWallet().PublicKey(),
		CoinMint:     solana.NewWallet().PublicKey(),
		CoinVault:    solana.NewWallet().PublicKey(),
		PcMint:       solana.NewWallet().PublicKey(),
		PcVault:      solana.NewWallet().PublicKey(),
		VaultSigner:  solana.NewWallet().PublicKey(),
	}
}

func newTestServer(markets *fakeMarkets) *httptest.Server {
	return httptest.NewServer(CreateRoutes(Dependencies{
		Markets:    markets,
		Blockhash:  &fakeBlockhash{hash: solana.Hash(solana.NewWallet().PublicKey())},
		Programs:   testPrograms,
		Generation: instructions.GenerationLegacy,
		Log:        zap.NewNop(),
	}))
}

func post(t *testing.T, url string, body interface{}) *http.Response {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func newSwapMarket(keys *coder.MarketPubkeys) types.SwapMarket {
	return types.SwapMarket{
		Market:                 keys.Market.String(),
		OpenOrders:             solana.NewWallet().PublicKey().String(),
		OrderPayerTokenAccount: solana.NewWallet().PublicKey().String(),
		CoinWallet:             solana.NewWallet().PublicKey().String(),
	}
}

func TestGetMarket(t *testing.T) {
	keys := newTestMarketKeys()
	server := newTestServer(&fakeMarkets{keys: map[solana.PublicKey]*coder.MarketPubkeys{keys.Market: keys}})
	defer server.Close()

	resp, err := http.Get(server.URL + "/markets/" + keys.Market.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var actual coder.MarketPubkeys
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&actual))
	assert.Equal(t, *keys, actual)

	missing, err := http.Get(server.URL + "/markets/" + solana.NewWallet().PublicKey().String())
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	invalid, err := http.Get(server.URL + "/markets/not-a-key")
	require.NoError(t, err)
	defer invalid.Body.Close()
	assert.Equal(t, http.StatusBadRequest, invalid.StatusCode)
}

func TestGetMarket_DecodeError(t *testing.T) {
	server := newTestServer(&fakeMarkets{err: errors.Wrap(coder.ErrHeadPaddingMismatch, "decode market")})
	defer server.Close()

	resp, err := http.Get(server.URL + "/markets/" + solana.NewWallet().PublicKey().String())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestInitAccount(t *testing.T) {
	server := newTestServer(&fakeMarkets{})
	defer server.Close()

	authority := solana.NewWallet().PublicKey()
	resp := post(t, server.URL+"/instructions/init-account", types.InitAccountRequest{
		Authority:  authority.String(),
		Market:     solana.NewWallet().PublicKey().String(),
		OpenOrders: solana.NewWallet().PublicKey().String(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ins types.Instruction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ins))
	assert.Equal(t, testPrograms.Swap.String(), ins.ProgramID)
	require.Len(t, ins.Accounts, 5)
	assert.Equal(t, authority.String(), ins.Accounts[1].Pubkey)
	assert.True(t, ins.Accounts[1].IsSigner)

	data, err := base58.Decode(ins.Data)
	require.NoError(t, err)
	assert.Equal(t, coder.InstructionInitAccount[:], data)
}

func TestSwap(t *testing.T) {
	keys := newTestMarketKeys()
	server := newTestServer(&fakeMarkets{keys: map[solana.PublicKey]*coder.MarketPubkeys{keys.Market: keys}})
	defer server.Close()

	req := types.SwapRequest{
		Authority:    solana.NewWallet().PublicKey().String(),
		PcWallet:     solana.NewWallet().PublicKey().String(),
		Market:       newSwapMarket(keys),
		Amount:       1,
		Side:         "ask",
		Rate:         2,
		FromDecimals: 3,
	}

	resp := post(t, server.URL+"/instructions/swap", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ins types.Instruction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ins))
	require.Len(t, ins.Accounts, instructions.MarketAccountsLen+5)
	assert.Equal(t, keys.Market.String(), ins.Accounts[0].Pubkey)
	assert.Equal(t, keys.VaultSigner.String(), ins.Accounts[9].Pubkey)
	assert.Equal(t, req.Market.CoinWallet, ins.Accounts[10].Pubkey)
	assert.Equal(t, req.Authority, ins.Accounts[11].Pubkey)

	data, err := base58.Decode(ins.Data)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		248, 198, 158, 145, 225, 117, 135, 200,
		1,
		1, 0, 0, 0, 0, 0, 0, 0,
		2, 0, 0, 0, 0, 0, 0, 0,
		3, 0, 0,
	}, data)
}

func TestSwap_BadRequest(t *testing.T) {
	keys := newTestMarketKeys()
	server := newTestServer(&fakeMarkets{keys: map[solana.PublicKey]*coder.MarketPubkeys{keys.Market: keys}})
	defer server.Close()

	req := types.SwapRequest{
		Authority: solana.NewWallet().PublicKey().String(),
		PcWallet:  solana.NewWallet().PublicKey().String(),
		Market:    newSwapMarket(keys),
		Side:      "sell",
	}
	resp := post(t, server.URL+"/instructions/swap", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req.Side = "bid"
	req.PcWallet = "invalid"
	resp = post(t, server.URL+"/instructions/swap", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSwapTransitive(t *testing.T) {
	from, to := newTestMarketKeys(), newTestMarketKeys()
	server := newTestServer(&fakeMarkets{keys: map[solana.PublicKey]*coder.MarketPubkeys{
		from.Market: from,
		to.Market:   to,
	}})
	defer server.Close()

	resp := post(t, server.URL+"/instructions/swap-transitive", types.SwapTransitiveRequest{
		Authority:     solana.NewWallet().PublicKey().String(),
		PcWallet:      solana.NewWallet().PublicKey().String(),
		From:          newSwapMarket(from),
		To:            newSwapMarket(to),
		Amount:        10,
		Rate:          20,
		FromDecimals:  6,
		QuoteDecimals: 9,
		Strict:        true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ins types.Instruction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ins))
	require.Len(t, ins.Accounts, 2*instructions.MarketAccountsLen+5)
	assert.Equal(t, from.Market.String(), ins.Accounts[0].Pubkey)
	assert.Equal(t, to.Market.String(), ins.Accounts[instructions.MarketAccountsLen].Pubkey)

	data, err := base58.Decode(ins.Data)
	require.NoError(t, err)

	decoded, err := coder.DecodeInstructionData(data)
	require.NoError(t, err)
	assert.Equal(t, coder.SwapTransitive{
		Amount:          10,
		MinExchangeRate: coder.ExchangeRate{Rate: 20, FromDecimals: 6, QuoteDecimals: 9, Strict: true},
	}, decoded)
}

func TestSwapTransaction(t *testing.T) {
	keys := newTestMarketKeys()
	server := newTestServer(&fakeMarkets{keys: map[solana.PublicKey]*coder.MarketPubkeys{keys.Market: keys}})
	defer server.Close()

	authority := solana.NewWallet().PublicKey()
	resp := post(t, server.URL+"/transactions/swap", types.SwapTransactionRequest{
		SwapRequest: types.SwapRequest{
			Authority:    authority.String(),
			PcWallet:     solana.NewWallet().PublicKey().String(),
			Market:       newSwapMarket(keys),
			Amount:       1,
			Side:         "bid",
			Rate:         2,
			FromDecimals: 3,
		},
		ComputeUnits:  100_000,
		MicroLamports: 5_000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out types.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	tx, err := solana.TransactionFromBase64(out.Transaction)
	require.NoError(t, err)
	assert.Equal(t, out.Blockhash, tx.Message.RecentBlockhash.String())
	assert.Equal(t, authority, tx.Message.AccountKeys[0])
	assert.Len(t, tx.Message.Instructions, 3)
	require.Len(t, tx.Signatures, 1)
	assert.Equal(t, solana.Signature{}, tx.Signatures[0])
}

func TestStatusFor(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
	}{
		{errors.Wrap(ErrBadRequest, "invalid market"), http.StatusBadRequest},
		{errors.Wrap(rpc.ErrAccountNotFound, "account"), http.StatusNotFound},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.Wrap(coder.ErrTailPaddingMismatch, "decode"), http.StatusUnprocessableEntity},
		{coder.ErrMarketAddressMismatch, http.StatusUnprocessableEntity},
		{errors.Wrap(coder.ErrSerialization, "encode"), http.StatusInternalServerError},
		{errors.New("connection reset"), http.StatusBadGateway},
	} {
		assert.Equal(t, tc.status, statusFor(tc.err), tc.err.Error())
	}
}
