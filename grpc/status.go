package mediagrpc

import (
	"context"
	"errors"

	"github.com/blockberries/mediarecord/runtime"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusCodes maps runtime errors to gRPC status codes. Every entry
// has its own code so clients can map back.
var statusCodes = []struct {
	err  error
	code codes.Code
}{
	{runtime.ErrLifecycle, codes.FailedPrecondition},
	{runtime.ErrAccountExists, codes.AlreadyExists},
	{runtime.ErrInvalidRequest, codes.InvalidArgument},
	{runtime.ErrInvalidBlock, codes.OutOfRange},
	{context.Canceled, codes.Canceled},
	{context.DeadlineExceeded, codes.DeadlineExceeded},
}

// toStatus converts a runtime error into a gRPC status error.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return status.Error(sc.code, err.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}

// remoteError is a runtime error received over the wire. It matches
// the runtime error it was built from with errors.Is and keeps its
// gRPC status.
type remoteError struct {
	target error
	st     *status.Status
}

func (e *remoteError) Error() string              { return e.st.Message() }
func (e *remoteError) Is(target error) bool       { return target == e.target }
func (e *remoteError) GRPCStatus() *status.Status { return e.st }

// fromStatus converts a gRPC status error back into an error that
// matches the runtime error the server returned.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, sc := range statusCodes {
		if st.Code() == sc.code {
			return &remoteError{target: sc.err, st: st}
		}
	}
	return err
}
