// Package ws streams crunch results to WebSocket clients.
//
// New(source) creates a Hub. Hub.Publish is registered with
// runner.Runner.OnCrunch and fans each event out to every connected client.
// Hub.ServeHTTP upgrades an HTTP connection, sends the current tummy
// immediately, then streams one message per crunch. Hub.Run(ctx) closes all
// connections once ctx is cancelled.
//
// Message format sent to clients:
//
//	{"event": "tummy",  "data": [ /* facts, oldest first */ ]}
//	{"event": "crunch", "data": { /* runner.Event */ }}
//
// The upgrader accepts all origins. The endpoint is mounted at
// /api/v1/stream by the binary.
package ws
