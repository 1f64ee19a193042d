// Package mfq provides an unbounded MPMC FIFO queue.
//
// Two interchangeable implementations share one contract:
//
//   - [LockFree]: Michael–Scott lock-free queue with ABA-protecting
//     stamped indices and per-worker node recycling.
//   - [Locked]: a single-mutex reference queue with the identical
//     external behavior, used to validate [LockFree] and as a baseline.
//
// # Quick Start
//
//	b := mfq.New(runtime.GOMAXPROCS(0))
//	q := mfq.BuildLockFree[int](b)
//
//	h := q.Worker(0)
//	if err := h.Enqueue(42); err != nil {
//	    // ErrNoMem: allocator exhausted (or WithMaxNodes budget hit)
//	}
//	v, err := h.Dequeue()
//	if mfq.IsEmpty(err) {
//	    // nothing to dequeue right now — never blocks
//	}
//
// # Worker Handles
//
// Go has no thread-local-storage primitive suited to a per-thread
// freelist slot, so the worker-team assignment that the OpenMP-based
// original gets implicitly from omp_get_thread_num() is explicit here: a
// queue is built for a fixed team size (mfq.New(workers)), and each
// goroutine calls Worker(id) once to obtain its own [Handle]. Exactly one
// goroutine should use a given id's Handle at a time.
//
//	for id := range workers {
//	    go func(id int) {
//	        h := q.Worker(id)
//	        for job := range jobs {
//	            h.Enqueue(job)
//	        }
//	    }(id)
//	}
//
// # Statistics
//
// EnqueueStats/DequeueStats mutate a caller-owned [Stats] with per-CAS
// and per-freelist counters. Counters are per-worker and need no atomic
// protection; combine them across workers with [Combine].
//
//	var s mfq.Stats
//	h.EnqueueStats(42, &s)
//	fmt.Println(s)
//
// # Error Handling
//
// Exactly two error kinds cross the queue boundary: [ErrEmpty] (benign —
// dequeue found nothing, the caller's natural back-pressure) and
// [ErrNoMem] (exceptional — allocator exhaustion or an exhausted
// [Builder.WithMaxNodes] budget). [IsEmpty] and [IsNoMem] classify an
// error; [CodeOf] maps it to the three-valued [Code] the original C API
// exposes (OK/Empty/NoMem) for callers that want a stable numeric
// contract (e.g. a process exit code).
//
// # Length and Destroy
//
// [LockFree.Len] walks the live chain without synchronization and is not
// linearizable: under concurrent mutation it returns only a lower bound.
// It is exact once all workers are quiescent, which is the only case this
// package's own tests rely on. [Locked.Len] walks the chain while holding
// the queue's mutex, so its count is exact at the moment it holds the
// lock.
//
// Destroy drops a queue's internal references so it becomes collectible
// promptly; Go has no manual free, so that is the entire contract. The
// caller must ensure no concurrent access during or after the call.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm
// verification: it tracks explicit synchronization primitives but cannot
// observe the happens-before relationship a stamped CAS establishes
// between an enqueuer's write to node.value and a dequeuer's read of it.
// [RaceEnabled] lets tests skip the concurrent LockFree suites under
// -race while still running them normally otherwise; the algorithm is
// correct either way.
package mfq
