package mfq

import (
	"sync"
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// node is one link in the queue's chain or a freelist. value is only
// meaningful while the node is reachable from head.next — once pushed to
// a freelist it is logically dead, physically live: its address (here, its
// arena index) stays stable so a concurrent reader of a stale stamped
// index observes a stale-but-valid stamp and fails its CAS instead of
// corrupting the chain.
type node[T any] struct {
	next  atomix.Uint64 // stamped index, nullIndex when terminal
	value T
}

// arena is a grow-only, copy-on-append store of *node[T]. Index lookups
// are lock-free (a single atomic load of the current snapshot); growth
// is guarded by a short-lived mutex, the one place this package accepts
// brief serialization — exactly where the C original would call malloc,
// and itself serialized by the platform allocator's own arena locks.
//
// Once published, a snapshot's first len(snapshot) entries are never
// mutated again, so readers never need the mutex: the happens-before
// edge comes from the atomic.Pointer store/load pair around growth.
type arena[T any] struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[[]*node[T]]
	maxNodes int // 0 means unbounded
}

func newArena[T any](maxNodes int) *arena[T] {
	a := &arena[T]{maxNodes: maxNodes}
	s := make([]*node[T], 0, 64)
	a.snapshot.Store(&s)
	return a
}

func (a *arena[T]) get(idx uint32) *node[T] {
	s := *a.snapshot.Load()
	return s[idx]
}

// alloc appends a freshly constructed node to the arena and returns its
// index. Returns ErrNoMem if the optional node budget is exhausted.
func (a *arena[T]) alloc() (uint32, *node[T], error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	old := *a.snapshot.Load()
	if a.maxNodes > 0 && len(old) >= a.maxNodes {
		return 0, nil, ErrNoMem
	}
	if len(old) >= int(nullIndex)-1 {
		return 0, nil, ErrNoMem
	}

	idx := uint32(len(old))
	n := &node[T]{}
	grown := append(old, n)
	a.snapshot.Store(&grown)
	return idx, n, nil
}

// len reports the number of nodes ever allocated (arena never shrinks).
func (a *arena[T]) len() int {
	return len(*a.snapshot.Load())
}
