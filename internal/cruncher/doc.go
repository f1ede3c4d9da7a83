// Package cruncher turns one fetched number fact into a verdict and keeps the
// bounded history of accepted facts.
//
// Each Crunch runs Idle → Fetching → verdict → Idle:
//   - fetch error or malformed result: ErrUnexpected, tummy untouched
//   - FAILURE result: "Blech! <status>", tummy untouched
//   - odd number: "Yuk! <n>", tummy untouched
//   - even number with room: "Yum! <n>", fact appended
//   - even number when full: "Burp! <evicted>", oldest evicted, fact appended
//
// A Cruncher is not safe for concurrent use.
package cruncher
