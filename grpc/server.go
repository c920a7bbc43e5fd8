package mediagrpc

import (
	"context"
	"net"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/types"

	"google.golang.org/grpc"
)

// Compile-time interface check.
var _ RuntimeServiceServer = (*GRPCServer)(nil)

// GRPCServer exposes a runtime connection as a gRPC service. No type
// conversion is needed: domain types are serialized directly via
// cramberry.
type GRPCServer struct {
	conn mediarecord.Connection
}

// NewGRPCServer creates a gRPC server backed by conn, usually a
// *runtime.Runtime.
func NewGRPCServer(conn mediarecord.Connection) *GRPCServer {
	return &GRPCServer{conn: conn}
}

// Register adds the runtime service to a gRPC server.
func (s *GRPCServer) Register(gs *grpc.Server) {
	RegisterRuntimeServiceServer(gs, s)
}

// Serve starts the gRPC server on the given listener.
func (s *GRPCServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs.Serve(lis)
}

func (s *GRPCServer) Genesis(ctx context.Context, doc *types.GenesisDoc) (*types.GenesisResult, error) {
	res, err := s.conn.Genesis(ctx, *doc)
	if err != nil {
		return nil, toStatus(err)
	}
	return &res, nil
}

func (s *GRPCServer) ExecuteBlock(ctx context.Context, block *types.Block) (*types.BlockOutcome, error) {
	outcome, err := s.conn.ExecuteBlock(ctx, *block)
	if err != nil {
		return nil, toStatus(err)
	}
	return &outcome, nil
}

func (s *GRPCServer) Commit(ctx context.Context, _ *CommitRequest) (*types.CommitResult, error) {
	result, err := s.conn.Commit(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &result, nil
}

func (s *GRPCServer) Simulate(ctx context.Context, req *SimulateRequest) (*types.TxOutcome, error) {
	outcome, err := s.conn.Simulate(ctx, req.Tx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &outcome, nil
}

func (s *GRPCServer) Account(ctx context.Context, req *types.AccountQuery) (*types.AccountQueryResult, error) {
	result, err := s.conn.Account(ctx, req.Key)
	if err != nil {
		return nil, toStatus(err)
	}
	return &result, nil
}

func (s *GRPCServer) OpenAccount(ctx context.Context, req *types.OpenAccountRequest) (*OpenAccountResponse, error) {
	if err := s.conn.OpenAccount(ctx, *req); err != nil {
		return nil, toStatus(err)
	}
	return &OpenAccountResponse{}, nil
}
