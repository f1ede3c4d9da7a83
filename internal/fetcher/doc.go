// Package fetcher retrieves random number facts from the numbers API.
//
// Fetcher is the capability the cruncher depends on: one Call per fetch,
// returning a classified Result. NumbersFetcher is the HTTP implementation.
// It classifies every HTTP status (200 is SUCCESS, anything else FAILURE)
// and only returns an error when the transport itself fails or a 200 body
// does not start with an integer.
//
// Every classified call is appended to an in-memory request log readable
// through Log(). The clock used for call_time is injectable via WithClock.
package fetcher
