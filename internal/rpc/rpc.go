package rpc

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// ErrAccountNotFound is returned when the ledger has no account at the
// requested address.
var ErrAccountNotFound = rpc.ErrNotFound

// AccountFetcher returns the raw data of an account.
type AccountFetcher interface {
	GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error)
}

type Client struct {
	rpcClient  *rpc.Client
	commitment rpc.CommitmentType
}

func NewClient(url string) *Client {
	return &Client{
		rpcClient:  rpc.New(url),
		commitment: rpc.CommitmentConfirmed,
	}
}

func (c *Client) GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	resp, err := c.rpcClient.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get account info %s", address)
	}

	if resp == nil || resp.Value == nil || resp.Value.Data == nil {
		return nil, errors.Wrapf(ErrAccountNotFound, "account %s", address)
	}

	return resp.Value.Data.GetBinary(), nil
}

func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	resp, err := c.rpcClient.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, errors.Wrap(err, "get latest blockhash")
	}

	return resp.Value.Blockhash, nil
}
