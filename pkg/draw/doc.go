// Package draw composes an entropy source with the uniform sampler to
// select a 1-indexed winner.
//
//	client := beacon.NewClient(beacon.DefaultBaseURL)
//	drawer, err := draw.New(entropy.NewBeaconSource(client))
//	if err != nil {
//	    return err
//	}
//	winner, err := drawer.Pick(ctx, 150, beacon.RoundFromNumber(4173492))
//
// With a beacon-backed source the draw is verifiable: anyone can re-fetch
// the round, re-run the sampler, and confirm the winner.
package draw
