// Package beacon provides an HTTP client for drand-style randomness
// beacons.
//
// A beacon publishes time-ordered, publicly verifiable random values in
// numbered rounds. The client fetches the randomness payload for one
// round as raw bytes:
//
//	client := beacon.NewClient(beacon.DefaultBaseURL)
//	raw, err := client.Randomness(ctx, beacon.RoundFromNumber(4173492))
//
// Requests hit GET {baseURL}/{chain}/{round}; the chain segment defaults
// to the drand mainnet chain hash and can be cleared with WithChain("").
//
// Transient failures (timeouts, transport errors, non-2xx statuses) are
// retried with exponential backoff up to a configured bound, after which
// ErrUnavailable is returned with the last cause. Responses that arrive
// but are malformed fail immediately with ErrProtocol, since retrying
// cannot fix bad data.
//
// The client does not verify beacon signatures; it trusts transport
// integrity and is intended for use where the resulting draw can be
// re-checked against the public beacon by any third party.
package beacon
