package mfq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// Two and only two error kinds cross the queue boundary: ErrEmpty (benign,
// expected, information) and ErrNoMem (exceptional, allocator exhaustion).
// Everything else — contended CAS, ABA avoidance, tail lag, freelist
// misses — is handled internally by the retry protocol and is never
// observable as an error.

// ErrEmpty reports that a dequeue found nothing to return. This is an
// alias of [iox.ErrWouldBlock]: "queue empty" is exactly iox's "operation
// would block" — a control-flow signal, not a failure, and the caller's
// natural back-pressure rather than something to propagate.
var ErrEmpty = iox.ErrWouldBlock

// ErrNoMem reports that a node could not be obtained — either the
// process is out of memory, or the queue was built with WithMaxNodes and
// that budget is exhausted.
var ErrNoMem = errors.New("mfq: out of memory")

// IsEmpty reports whether err indicates a dequeue found the queue empty.
func IsEmpty(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsNoMem reports whether err indicates allocator exhaustion.
func IsNoMem(err error) bool {
	return errors.Is(err, ErrNoMem)
}

// Code is the three-valued return contract: OK, Empty, or NoMem.
type Code uint8

const (
	OK Code = iota
	Empty
	NoMem
)

// String returns a human-readable mapping, mirroring the original C
// q_error() switch.
func (c Code) String() string {
	switch c {
	case OK:
		return "Successful"
	case Empty:
		return "Queue empty"
	case NoMem:
		return "Out of memory"
	default:
		return "Unknown"
	}
}

// CodeOf classifies an error returned by a queue operation into its Code.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return OK
	case IsEmpty(err):
		return Empty
	case IsNoMem(err):
		return NoMem
	default:
		return NoMem
	}
}
