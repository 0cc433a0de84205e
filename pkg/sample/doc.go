// Package sample maps entropy onto bounded integers without bias.
//
// A naive v mod n on a single random draw is non-uniform whenever n does
// not evenly divide the 64-bit value space. Uniform eliminates that bias
// with rejection sampling: draws in the biased tail are discarded and
// fresh draws are derived deterministically from an incrementing counter,
// so the whole procedure is reproducible from the entropy alone.
//
// The construction is pinned by AlgorithmID; verifiers in other languages
// must reproduce it bit for bit.
package sample
