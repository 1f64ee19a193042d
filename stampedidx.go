package mfq

// A stamped index packs a 32-bit arena index and a 32-bit version stamp
// into a single uint64 so both can be read and CAS'd atomically together.
//
// This is the Go-native answer to spec's 48-bit-address/16-bit-stamp
// pointer: Go's garbage collector cannot see an integer as a live
// reference, so a node reachable only through a bit-packed address would
// be collectible out from under the queue the moment its only other
// reference (a freelist slot, say) is overwritten. Indexing into an
// append-only arena (arena.go) keeps every node GC-reachable for the
// queue's lifetime regardless of how many times its index is recycled,
// while still giving the stamp the job spec assigns it: distinguishing
// "the same index observed twice" from "the index was never recycled in
// between".
//
// The stamp only needs to outlive the window between one thread's load
// and its CAS, so 32 bits leaves an enormous margin before wraparound
// could plausibly alias — wider than spec's minimum 16-bit requirement,
// at zero extra cost since the index side only ever needs 32 bits too.
const nullIndex = ^uint32(0)

func packStamped(idx, stamp uint32) uint64 {
	return uint64(stamp)<<32 | uint64(idx)
}

func unpackStamped(w uint64) (idx, stamp uint32) {
	return uint32(w), uint32(w >> 32)
}

func nullStamped(stamp uint32) uint64 {
	return packStamped(nullIndex, stamp)
}
