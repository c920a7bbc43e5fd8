package mediagrpc

import "github.com/blockberries/mediarecord/types"

// Transport-specific wrapper types for RPC methods whose interface
// signatures don't map to a single request/response struct.

// CommitRequest is the (empty) request for Connection.Commit.
type CommitRequest struct{}

// SimulateRequest wraps the parameter for Connection.Simulate.
type SimulateRequest struct {
	Tx types.Transaction `cramberry:"1"`
}

// OpenAccountResponse is the (empty) response for Connection.OpenAccount.
type OpenAccountResponse struct{}
