package beacon

import "strconv"

// Round identifies a single published unit of beacon randomness.
// It wraps the upstream API's path segment: usually a decimal round
// number, but any non-empty identifier the beacon accepts is valid.
// Rounds are immutable values and compare by value.
type Round string

// RoundFromNumber creates a Round from a numeric round number.
func RoundFromNumber(n uint64) Round {
	return Round(strconv.FormatUint(n, 10))
}

// String returns the round identifier as it appears in request paths.
func (r Round) String() string {
	return string(r)
}

// Number parses the round as a decimal round number.
// Not every valid round is numeric; callers that only need the path
// segment should use String.
func (r Round) Number() (uint64, error) {
	return strconv.ParseUint(string(r), 10, 64)
}

// IsZero reports whether the round is empty.
// Empty rounds are rejected by deterministic sources.
func (r Round) IsZero() bool {
	return r == ""
}
