package entropy

import (
	"context"

	"github.com/bft-labs/fairdraw/pkg/beacon"
)

// Source supplies raw entropy bytes for a draw.
//
// Two implementations are provided: BeaconSource, which is deterministic
// and round-keyed, and LocalSource, which generates fresh local
// randomness on every call. Callers that need reproducible draws must
// use a deterministic source.
type Source interface {
	// Entropy returns the raw entropy bytes for the given round.
	Entropy(ctx context.Context, round beacon.Round) ([]byte, error)
}
