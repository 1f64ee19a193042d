package mfq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// LockFree is the Michael–Scott MPMC unbounded FIFO queue: a singly
// linked list of arena-indexed nodes addressed through stamped indices,
// with one recycling freelist per worker. head always points at a
// sentinel node that owns no value; tail points at the last node, or
// (transiently, between an enqueuer's two CASes) at a node whose next is
// already linked — any operation that observes this "tail lag" helps
// advance tail before proceeding, which is what makes the queue
// lock-free rather than merely non-blocking for whichever enqueuer is
// lagging.
type LockFree[T any] struct {
	arena     *arena[T]
	head      atomix.Uint64
	tail      atomix.Uint64
	freelists []atomix.Uint64
}

func newLockFree[T any](workers, maxNodes int) *LockFree[T] {
	a := newArena[T](maxNodes)
	idx, sentinel, err := a.alloc()
	if err != nil {
		// Unreachable: maxNodes is either 0 (unbounded) or at least 1,
		// since WithMaxNodes rejects smaller budgets, so the sentinel
		// always fits.
		panic("mfq: maxNodes too small to hold the sentinel node")
	}
	sentinel.next.StoreRelease(nullStamped(0))

	q := &LockFree[T]{
		arena:     a,
		freelists: make([]atomix.Uint64, workers),
	}
	for i := range q.freelists {
		q.freelists[i].StoreRelaxed(nullStamped(0))
	}
	q.head.StoreRelease(packStamped(idx, 0))
	q.tail.StoreRelease(packStamped(idx, 0))
	return q
}

// Worker binds a Handle to freelist slot id. id must be in [0, workers);
// the freelist array is sized once at construction (spec's thread-team
// model), so there is no way to register a worker past that bound.
func (q *LockFree[T]) Worker(id int) Handle[T] {
	if id < 0 || id >= len(q.freelists) {
		panic("mfq: worker id out of range")
	}
	return &lfHandle[T]{q: q, id: id}
}

// Len walks the live chain from head.next, counting nodes. Not
// linearizable: under concurrent mutation this is only a lower bound. It
// is defined and exact for post-quiescence inspection (spec S1/S3/S4),
// which is the only use this package makes of it.
func (q *LockFree[T]) Len() int {
	sn := q.arena.get(idxOf(q.head.LoadAcquire())).next.LoadAcquire()
	idx, _ := unpackStamped(sn)
	c := 0
	for idx != nullIndex {
		c++
		sn = q.arena.get(idx).next.LoadAcquire()
		idx, _ = unpackStamped(sn)
	}
	return c
}

// Destroy drops the queue's internal references so the arena and
// freelists become collectible. The caller must ensure no concurrent
// access, matching spec's destroy() contract — Go has no manual free, so
// there is nothing else to do.
func (q *LockFree[T]) Destroy() {
	empty := make([]*node[T], 0)
	q.arena.snapshot.Store(&empty)
	q.freelists = nil
}

func idxOf(stamped uint64) uint32 {
	idx, _ := unpackStamped(stamped)
	return idx
}

type lfHandle[T any] struct {
	q  *LockFree[T]
	id int
}

func (h *lfHandle[T]) Enqueue(v T) error               { return h.q.enqueue(h.id, v, nil) }
func (h *lfHandle[T]) EnqueueStats(v T, s *Stats) error { return h.q.enqueue(h.id, v, s) }
func (h *lfHandle[T]) Dequeue() (T, error)              { return h.q.dequeue(h.id, nil) }
func (h *lfHandle[T]) DequeueStats(s *Stats) (T, error) { return h.q.dequeue(h.id, s) }

// obtainNode takes a node from this worker's freelist, falling back to
// the arena allocator on a miss. Only the owning worker ever touches its
// own freelist slot, so the pop is a plain load-then-store: no CAS, no
// contention, per spec §4.2.
func (q *LockFree[T]) obtainNode(workerID int, s *Stats) (uint32, *node[T], error) {
	sn := q.freelists[workerID].LoadAcquire()
	idx, _ := unpackStamped(sn)
	if idx == nullIndex {
		return q.arena.alloc()
	}
	n := q.arena.get(idx)
	q.freelists[workerID].StoreRelease(n.next.LoadAcquire())
	s.recordFreelistPop()
	return idx, n, nil
}

// releaseNode pushes idx (a sentinel just displaced by a successful
// dequeue) onto this worker's freelist. Logically dead, physically
// live: its address stays valid so a stale stamped reference to it still
// fails CAS instead of corrupting the chain.
func (q *LockFree[T]) releaseNode(workerID int, idx uint32, s *Stats) {
	old := q.freelists[workerID].LoadAcquire()
	_, oldStamp := unpackStamped(old)
	q.arena.get(idx).next.StoreRelease(old)
	q.freelists[workerID].StoreRelease(packStamped(idx, oldStamp+1))
	s.recordFreelistPush()
}

// enqueue implements spec §4.3. Linearization point: the CAS at step (c).
func (q *LockFree[T]) enqueue(workerID int, v T, s *Stats) error {
	idx, n, err := q.obtainNode(workerID, s)
	if err != nil {
		return err
	}
	n.value = v
	n.next.StoreRelease(nullStamped(0))

	sw := spin.Wait{}
	for {
		st := q.tail.LoadAcquire()
		tIdx, tStamp := unpackStamped(st)
		tailNode := q.arena.get(tIdx)
		sn := tailNode.next.LoadAcquire()
		nIdx, nStamp := unpackStamped(sn)

		if st != q.tail.LoadAcquire() {
			sw.Once()
			continue
		}

		if nIdx == nullIndex {
			// tail is current: try to link the new node after it.
			linked := tailNode.next.CompareAndSwapAcqRel(sn, packStamped(idx, nStamp+1))
			s.recordCAS(linked)
			if linked {
				// Helping CAS: failure is benign, the next operation
				// of any kind will advance tail on our behalf.
				ok := q.tail.CompareAndSwapAcqRel(st, packStamped(idx, tStamp+1))
				s.recordCAS(ok)
				return nil
			}
		} else {
			// tail lags one behind an already-linked node; help it
			// catch up before retrying our own link attempt.
			ok := q.tail.CompareAndSwapAcqRel(st, packStamped(nIdx, tStamp+1))
			s.recordCAS(ok)
		}
		sw.Once()
	}
}

// dequeue implements spec §4.4. Linearization point: the CAS at step (d).
func (q *LockFree[T]) dequeue(workerID int, s *Stats) (T, error) {
	var zero T
	sw := spin.Wait{}
	for {
		sh := q.head.LoadAcquire()
		hIdx, hStamp := unpackStamped(sh)
		st := q.tail.LoadAcquire()
		tIdx, tStamp := unpackStamped(st)
		headNode := q.arena.get(hIdx)
		sn := headNode.next.LoadAcquire()
		nIdx, _ := unpackStamped(sn)

		if sh != q.head.LoadAcquire() || st != q.tail.LoadAcquire() {
			sw.Once()
			continue
		}

		if hIdx == tIdx {
			if nIdx == nullIndex {
				return zero, ErrEmpty
			}
			// tail lags; help it advance before retrying.
			ok := q.tail.CompareAndSwapAcqRel(st, packStamped(nIdx, tStamp+1))
			s.recordCAS(ok)
			sw.Once()
			continue
		}

		// Read the value before the CAS: reading it after would race
		// with a recycling enqueuer that already reused this node.
		v := q.arena.get(nIdx).value
		ok := q.head.CompareAndSwapAcqRel(sh, packStamped(nIdx, hStamp+1))
		s.recordCAS(ok)
		if ok {
			q.releaseNode(workerID, hIdx, s)
			return v, nil
		}
		sw.Once()
	}
}
