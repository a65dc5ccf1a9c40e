// Package shutdown coordinates graceful teardown of a group of services under
// a two-phase protocol.
//
// A Group owns an ordered collection of Stoppable services. The first
// termination notification triggers a graceful shutdown of every service
// concurrently; a second notification fires a shared force Signal that tells
// every service to abandon remaining graceful work. Discarding a Group via
// Close without a prior explicit shutdown runs a forced shutdown synchronously
// so cleanup is guaranteed before the group goes away.
//
// Typical wiring in main:
//
//	group := shutdown.NewGroup().WithLogger(logger)
//	group.Push(shutdown.GRPCServer(grpcSrv))
//	group.Push(shutdown.HTTPServer(app))
//
//	source := shutdown.InstallTerminationHandle(logger)
//	_ = group.WaitToTerminate(context.Background(), source)
package shutdown
