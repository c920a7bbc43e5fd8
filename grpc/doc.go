// Package mediagrpc serves a mediarecord runtime over gRPC and dials
// it from remote hosts.
//
// The service is mediarecord.v1.RuntimeService with one unary method
// per mediarecord.Connection call: Genesis, ExecuteBlock, Commit,
// Simulate, Account and OpenAccount. Requests and responses are the
// structs from mediarecord/types, framed by the "cramberry" codec, so
// signed messages keep the exact bytes their signatures cover.
//
// Runtime errors cross the wire as gRPC status codes (lifecycle misuse
// is FailedPrecondition, a duplicate account AlreadyExists, a bad
// request InvalidArgument, an out-of-order block OutOfRange). The
// Client turns them back into errors that match the runtime sentinels
// under errors.Is.
package mediagrpc
