package mediagrpc

import (
	"context"
	"fmt"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/types"

	"google.golang.org/grpc"
)

// Compile-time interface check.
var _ mediarecord.Connection = (*Client)(nil)

// Client implements mediarecord.Connection for a remote runtime over
// gRPC using cramberry serialization. Lifecycle ordering is enforced
// by the server; its errors come back matching the runtime sentinels
// under errors.Is.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a remote runtime.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("mediarecord client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	return fromStatus(c.cc.Invoke(ctx, fullMethod(method), req, resp))
}

func (c *Client) Genesis(ctx context.Context, doc types.GenesisDoc) (types.GenesisResult, error) {
	resp := new(types.GenesisResult)
	if err := c.invoke(ctx, "Genesis", &doc, resp); err != nil {
		return types.GenesisResult{}, err
	}
	return *resp, nil
}

func (c *Client) ExecuteBlock(ctx context.Context, block types.Block) (types.BlockOutcome, error) {
	resp := new(types.BlockOutcome)
	if err := c.invoke(ctx, "ExecuteBlock", &block, resp); err != nil {
		return types.BlockOutcome{}, err
	}
	return *resp, nil
}

func (c *Client) Commit(ctx context.Context) (types.CommitResult, error) {
	resp := new(types.CommitResult)
	if err := c.invoke(ctx, "Commit", &CommitRequest{}, resp); err != nil {
		return types.CommitResult{}, err
	}
	return *resp, nil
}

func (c *Client) Simulate(ctx context.Context, tx types.Transaction) (types.TxOutcome, error) {
	resp := new(types.TxOutcome)
	if err := c.invoke(ctx, "Simulate", &SimulateRequest{Tx: tx}, resp); err != nil {
		return types.TxOutcome{}, err
	}
	return *resp, nil
}

func (c *Client) Account(ctx context.Context, key types.Pubkey) (types.AccountQueryResult, error) {
	resp := new(types.AccountQueryResult)
	if err := c.invoke(ctx, "Account", &types.AccountQuery{Key: key}, resp); err != nil {
		return types.AccountQueryResult{}, err
	}
	return *resp, nil
}

func (c *Client) OpenAccount(ctx context.Context, req types.OpenAccountRequest) error {
	return c.invoke(ctx, "OpenAccount", &req, new(OpenAccountResponse))
}
