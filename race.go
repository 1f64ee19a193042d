//go:build race

package mfq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent tests that trigger false positives
// from payload fields published via acquire/release on a separate word.
const RaceEnabled = true
