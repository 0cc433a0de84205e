package entropy

import (
	"context"

	"github.com/bft-labs/fairdraw/pkg/beacon"
)

// BeaconSource fetches round-keyed entropy from a randomness beacon.
// It is deterministic: the same round always yields the same bytes, and
// any third party can re-fetch them from the public beacon.
type BeaconSource struct {
	client *beacon.Client
}

// NewBeaconSource creates a source backed by the given beacon client.
func NewBeaconSource(client *beacon.Client) *BeaconSource {
	return &BeaconSource{client: client}
}

// Entropy returns the beacon randomness for the given round.
// An empty round fails with beacon.ErrRoundRequired.
func (s *BeaconSource) Entropy(ctx context.Context, round beacon.Round) ([]byte, error) {
	return s.client.Randomness(ctx, round)
}
