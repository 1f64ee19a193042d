//go:build !race

package mfq

// RaceEnabled is false when the race detector is not active.
const RaceEnabled = false
