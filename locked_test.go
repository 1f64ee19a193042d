package mfq_test

import (
	"math/rand/v2"
	"sort"
	"sync"
	"testing"

	"github.com/mfqueue/mfq"
)

func TestLockedSequentialFIFO(t *testing.T) {
	q := mfq.BuildLocked[int](mfq.New(1))
	h := q.Worker(0)

	for i := range 10 {
		if err := h.Enqueue(i); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	for i := range 10 {
		v, err := h.Dequeue()
		if err != nil {
			t.Fatalf("dequeue %d: %v", i, err)
		}
		if v != i {
			t.Fatalf("dequeue order: got %d want %d", v, i)
		}
	}
	if _, err := h.Dequeue(); !mfq.IsEmpty(err) {
		t.Fatalf("expected ErrEmpty after drain, got %v", err)
	}
}

func TestLockedFreshQueueEmpty(t *testing.T) {
	q := mfq.BuildLocked[int](mfq.New(1))
	h := q.Worker(0)

	if _, err := h.Dequeue(); !mfq.IsEmpty(err) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if n := q.Len(); n != 0 {
		t.Fatalf("Len on fresh queue: got %d want 0", n)
	}
}

func TestLockedMaxNodesTriggersNoMem(t *testing.T) {
	q := mfq.BuildLocked[int](mfq.New(1).WithMaxNodes(2))
	h := q.Worker(0)

	if err := h.Enqueue(1); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if err := h.Enqueue(2); !mfq.IsNoMem(err) {
		t.Fatalf("expected ErrNoMem, got %v", err)
	}
	if _, err := h.Dequeue(); err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if err := h.Enqueue(3); err != nil {
		t.Fatalf("enqueue after recycling a node: %v", err)
	}
}

func TestLockedConservationUnderConcurrency(t *testing.T) {
	const workers = 8
	const perWorker = 5000
	q := mfq.BuildLocked[int](mfq.New(workers))

	var wg sync.WaitGroup
	for id := range workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			h := q.Worker(id)
			for i := range perWorker {
				_ = h.Enqueue(i*workers + id)
			}
		}(id)
	}
	wg.Wait()

	drain := q.Worker(0)
	seen := make([]bool, workers*perWorker)
	count := 0
	for {
		v, err := drain.Dequeue()
		if mfq.IsEmpty(err) {
			break
		}
		if seen[v] {
			t.Fatalf("value %d dequeued twice", v)
		}
		seen[v] = true
		count++
	}
	if count != workers*perWorker {
		t.Fatalf("drained %d values, want %d", count, workers*perWorker)
	}
}

// Locked serves as the correctness oracle for LockFree: built from
// identical Builder parameters and driven by the same deterministic
// operation sequence, both implementations must produce identical
// dequeue sequences.
func TestLockedAndLockFreeAgreeOnSequentialTrace(t *testing.T) {
	const ops = 2000
	b := mfq.New(1)
	lf := mfq.BuildLockFree[int](b)
	lk := mfq.BuildLocked[int](b)
	hLF, hLK := lf.Worker(0), lk.Worker(0)

	rnd := rand.New(rand.NewPCG(1, 2))
	next := 0
	for i := 0; i < ops; i++ {
		if rnd.IntN(2) == 0 {
			v := next
			next++
			errLF := hLF.Enqueue(v)
			errLK := hLK.Enqueue(v)
			if (errLF == nil) != (errLK == nil) {
				t.Fatalf("enqueue divergence at op %d: lockfree=%v locked=%v", i, errLF, errLK)
			}
		} else {
			vLF, errLF := hLF.Dequeue()
			vLK, errLK := hLK.Dequeue()
			if mfq.IsEmpty(errLF) != mfq.IsEmpty(errLK) {
				t.Fatalf("dequeue divergence at op %d: lockfree=%v locked=%v", i, errLF, errLK)
			}
			if errLF == nil && vLF != vLK {
				t.Fatalf("dequeue value divergence at op %d: lockfree=%d locked=%d", i, vLF, vLK)
			}
		}
	}
	if lf.Len() != lk.Len() {
		t.Fatalf("final Len divergence: lockfree=%d locked=%d", lf.Len(), lk.Len())
	}
}

func TestLockedValuesFormAMultisetAfterConcurrentEnqueue(t *testing.T) {
	const producers = 4
	const consumers = 4
	const itemsPerProducer = 3000
	q := mfq.BuildLocked[int](mfq.New(producers + consumers))

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			h := q.Worker(id)
			for i := range itemsPerProducer {
				_ = h.Enqueue(id*itemsPerProducer + i)
			}
		}(p)
	}
	wg.Wait()

	drain := q.Worker(0)
	var got []int
	for {
		v, err := drain.Dequeue()
		if mfq.IsEmpty(err) {
			break
		}
		got = append(got, v)
	}
	if len(got) != producers*itemsPerProducer {
		t.Fatalf("dequeued %d values, want %d", len(got), producers*itemsPerProducer)
	}
	sort.Ints(got)
	for i, v := range got {
		if v != i {
			t.Fatalf("multiset mismatch at position %d: got %d", i, v)
		}
	}
}
