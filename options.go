package mfq

// Builder configures queue creation with a fluent API, mirroring the
// teacher package's own Builder/New(capacity) shape generalized from
// "ring-buffer capacity" to "worker-team size plus an optional node
// budget".
type Builder struct {
	workers  int
	maxNodes int
}

// New creates a Builder for a fixed team of workers. Worker count is
// immutable for the life of any queue built from it — the freelist array
// is sized to it once, per spec's thread-team model (spec §9: a fixed N
// also sidesteps the "two workers observe different N" hazard spec flags
// as an open question in the original).
//
// Panics if workers < 1.
func New(workers int) *Builder {
	if workers < 1 {
		panic("mfq: workers must be >= 1")
	}
	return &Builder{workers: workers}
}

// WithMaxNodes caps the total number of nodes the queue's arena (or, for
// the locked queue, its node count) will ever allocate. Once the budget
// is exhausted, further enqueues that need a fresh node return ErrNoMem
// instead of growing further — the Go-native way to make spec's NOMEM
// contract exercisable in a language whose allocator does not otherwise
// fail. Omit this call (the default, maxNodes == 0) for an unbounded
// queue that only runs out of nodes when the process runs out of memory.
//
// Panics if n < 1.
func (b *Builder) WithMaxNodes(n int) *Builder {
	if n < 1 {
		panic("mfq: maxNodes must be >= 1")
	}
	b.maxNodes = n
	return b
}

// BuildLockFree creates the Michael–Scott lock-free queue from b.
func BuildLockFree[T any](b *Builder) *LockFree[T] {
	return newLockFree[T](b.workers, b.maxNodes)
}

// BuildLocked creates the single-mutex reference queue from b, sharing
// b's worker count and node budget so it can serve as a drop-in
// correctness oracle for a LockFree built from the same Builder.
func BuildLocked[T any](b *Builder) *Locked[T] {
	return newLocked[T](b.workers, b.maxNodes)
}
