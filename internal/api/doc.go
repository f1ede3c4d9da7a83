// Package api implements the HTTP REST API for the number cruncher.
//
// New(runner) returns an http.Handler that serves:
//
//	GET  /api/v1/health  tummy size and capacity
//	GET  /api/v1/tummy   accepted facts, oldest first
//	GET  /api/v1/log     the fetcher's request log
//	POST /api/v1/crunch  run one crunch and return its verdict
//	GET  /metrics        Prometheus text exposition
//
// JSON endpoints respond with Content-Type: application/json and return 405
// for the wrong method. JSON types are defined in types.go. No external HTTP
// framework is used. The WebSocket stream (package ws) is mounted next to
// this handler by the binary.
package api
