package mediagrpc

import (
	"context"
	"fmt"

	"github.com/blockberries/mediarecord/types"

	"google.golang.org/grpc"
)

const serviceName = "mediarecord.v1.RuntimeService"

// RuntimeServiceServer is the server-side interface for the runtime
// gRPC service.
type RuntimeServiceServer interface {
	Genesis(context.Context, *types.GenesisDoc) (*types.GenesisResult, error)
	ExecuteBlock(context.Context, *types.Block) (*types.BlockOutcome, error)
	Commit(context.Context, *CommitRequest) (*types.CommitResult, error)
	Simulate(context.Context, *SimulateRequest) (*types.TxOutcome, error)
	Account(context.Context, *types.AccountQuery) (*types.AccountQueryResult, error)
	OpenAccount(context.Context, *types.OpenAccountRequest) (*OpenAccountResponse, error)
}

// RegisterRuntimeServiceServer registers srv on a gRPC server.
func RegisterRuntimeServiceServer(s *grpc.Server, srv RuntimeServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// --- Handler functions ---

func handlerGenesis(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.GenesisDoc)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RuntimeServiceServer).Genesis(ctx, req)
}

func handlerExecuteBlock(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.Block)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RuntimeServiceServer).ExecuteBlock(ctx, req)
}

func handlerCommit(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(CommitRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RuntimeServiceServer).Commit(ctx, req)
}

func handlerSimulate(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(SimulateRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RuntimeServiceServer).Simulate(ctx, req)
}

func handlerAccount(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.AccountQuery)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RuntimeServiceServer).Account(ctx, req)
}

func handlerOpenAccount(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.OpenAccountRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RuntimeServiceServer).OpenAccount(ctx, req)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor for the runtime.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RuntimeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Genesis", Handler: handlerGenesis},
		{MethodName: "ExecuteBlock", Handler: handlerExecuteBlock},
		{MethodName: "Commit", Handler: handlerCommit},
		{MethodName: "Simulate", Handler: handlerSimulate},
		{MethodName: "Account", Handler: handlerAccount},
		{MethodName: "OpenAccount", Handler: handlerOpenAccount},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mediarecord/v1/runtime.cram",
}
