// Package server accepts TCP connections and answers one request per
// connection: either a static route from the route table or a WebSocket
// opening handshake.
//
// The server supports:
//   - one goroutine per connection, each with its own parser and digest state
//   - bounded incremental reads: a request head may arrive in several reads
//     up to a configured maximum size
//   - graceful shutdown with context cancellation
//   - connection statistics and a JSON status API
//
// Example usage:
//
//	srv := server.New(server.Config{Addr: ":4485", Routes: table})
//	go srv.ListenAndServe()
//	srv.Shutdown(ctx)
package server
