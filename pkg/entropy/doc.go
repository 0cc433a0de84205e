// Package entropy defines where draw randomness comes from.
//
// The Source interface has exactly two implementations: BeaconSource,
// backed by a public randomness beacon and fully deterministic per round,
// and LocalSource, backed by the operating system's CSPRNG and not
// reproducible at all. The drawing layer depends only on the interface.
package entropy
