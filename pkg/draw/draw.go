package draw

import (
	"context"
	"errors"

	"github.com/bft-labs/fairdraw/pkg/beacon"
	"github.com/bft-labs/fairdraw/pkg/entropy"
	"github.com/bft-labs/fairdraw/pkg/log"
	"github.com/bft-labs/fairdraw/pkg/sample"
)

// Errors returned by the drawer. Check with errors.Is.
var (
	// ErrInvalidCount is returned when the entrant count is not positive.
	ErrInvalidCount = errors.New("draw: entrant count must be positive")

	// ErrNoSource is returned by New when no entropy source is given.
	ErrNoSource = errors.New("draw: entropy source is required")
)

// Result is the transcript of one draw. It carries everything a third
// party needs to recompute the winner: the round, the raw randomness,
// the entrant count, and the algorithm the sampler used.
type Result struct {
	// Round identifies the beacon round the entropy came from.
	// Empty for non-deterministic sources.
	Round beacon.Round

	// Randomness is the raw entropy the winner was derived from.
	Randomness []byte

	// Entrants is the number of entrants in the draw.
	Entrants int

	// Winner is the 1-indexed winning entrant, in [1, Entrants].
	Winner int

	// Algorithm names the derivation, for cross-implementation
	// verification.
	Algorithm string
}

// Drawer selects a winner from an entropy source.
// It holds no mutable state; all values are recomputed per call, so a
// Drawer is safe for concurrent use.
type Drawer struct {
	source entropy.Source
	logger log.Logger
}

// Option configures optional behavior of a Drawer.
type Option func(*Drawer)

// WithLogger sets a logger for draw diagnostics.
// If not provided, logging is disabled.
func WithLogger(logger log.Logger) Option {
	return func(d *Drawer) {
		d.logger = logger
	}
}

// New creates a Drawer backed by the given entropy source.
func New(source entropy.Source, opts ...Option) (*Drawer, error) {
	if source == nil {
		return nil, ErrNoSource
	}
	d := &Drawer{
		source: source,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Draw selects one winner among entrants for the given round and returns
// the full transcript.
//
// For a deterministic source, identical (entrants, round) always yields
// the identical winner, even across independently constructed drawers
// pointed at the same upstream. For LocalSource no such guarantee exists.
func (d *Drawer) Draw(ctx context.Context, entrants int, round beacon.Round) (*Result, error) {
	if entrants <= 0 {
		return nil, ErrInvalidCount
	}

	raw, err := d.source.Entropy(ctx, round)
	if err != nil {
		return nil, err
	}

	idx, err := sample.Uniform(raw, entrants)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Round:      round,
		Randomness: raw,
		Entrants:   entrants,
		Winner:     idx + 1,
		Algorithm:  sample.AlgorithmID,
	}
	d.logger.Debug("draw complete",
		log.String("round", round.String()),
		log.Hex("randomness", raw),
		log.Int("entrants", entrants),
		log.Int("winner", res.Winner))
	return res, nil
}

// Pick selects one winner among entrants for the given round.
// The winner is 1-indexed: it falls in [1, entrants].
func (d *Drawer) Pick(ctx context.Context, entrants int, round beacon.Round) (int, error) {
	res, err := d.Draw(ctx, entrants, round)
	if err != nil {
		return 0, err
	}
	return res.Winner, nil
}
