// Package fairdraw selects a winner deterministically and verifiably
// from a public randomness beacon.
//
// Example usage:
//
//	winner, err := fairdraw.Pick(context.Background(), 150, fairdraw.RoundFromNumber(4173492))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("winner:", winner)
//
// The convenience functions here target the public drand beacon with
// default settings. For custom beacons, timeouts, retry policies, or
// logging, compose pkg/beacon, pkg/entropy, and pkg/draw directly.
package fairdraw

import (
	"context"

	"github.com/bft-labs/fairdraw/pkg/beacon"
	"github.com/bft-labs/fairdraw/pkg/draw"
	"github.com/bft-labs/fairdraw/pkg/entropy"
)

// Round identifies one published unit of beacon randomness.
type Round = beacon.Round

// Result is the transcript of one draw, sufficient for third-party
// verification.
type Result = draw.Result

// RoundFromNumber creates a Round from a numeric round number.
func RoundFromNumber(n uint64) Round {
	return beacon.RoundFromNumber(n)
}

// Pick selects a 1-indexed winner among n entrants using the default
// public beacon. Identical (n, round) always returns the identical
// winner, so the draw can be verified by anyone.
func Pick(ctx context.Context, n int, round Round) (int, error) {
	d, err := draw.New(entropy.NewBeaconSource(beacon.NewClient(beacon.DefaultBaseURL)))
	if err != nil {
		return 0, err
	}
	return d.Pick(ctx, n, round)
}

// PickLocal selects a 1-indexed winner among n entrants using local
// system randomness. The result is NOT reproducible and cannot be
// verified against any beacon.
func PickLocal(ctx context.Context, n int) (int, error) {
	d, err := draw.New(entropy.NewLocalSource())
	if err != nil {
		return 0, err
	}
	return d.Pick(ctx, n, "")
}

// DefaultBeaconURL is the beacon endpoint used by Pick.
const DefaultBeaconURL = beacon.DefaultBaseURL
