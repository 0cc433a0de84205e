package entropy

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/bft-labs/fairdraw/pkg/beacon"
)

// localEntropySize matches the beacon's typical randomness length.
const localEntropySize = 32

// LocalSource generates entropy from the operating system's CSPRNG.
//
// It is NOT deterministic: every call returns fresh random bytes, the
// round argument has no effect, and draws made from it cannot be
// verified against any beacon. Use it only where reproducibility does
// not matter.
type LocalSource struct{}

// NewLocalSource creates a local fallback source.
func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

// Entropy returns freshly generated cryptographically secure random
// bytes. The round argument is ignored.
func (s *LocalSource) Entropy(ctx context.Context, round beacon.Round) ([]byte, error) {
	buf := make([]byte, localEntropySize)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("entropy: read system randomness: %w", err)
	}
	return buf, nil
}
