// Package types defines shared Go types used across the cruncher, the tummy
// buffer and the HTTP API.
package types
