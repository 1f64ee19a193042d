// Package bench drives a mfq.Queue from a fixed team of workers and
// reports throughput, mirroring the original C benchmark's two worker
// modes (fixed/random batches) and two configurations (equal/unequal),
// plus a tagged-enqueue correctness check.
package bench

import (
	"math/rand/v2"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"github.com/gammazero/deque"

	"github.com/mfqueue/mfq"
)

// BatchRange is a closed interval [Min, Max] a random-batch worker draws
// its per-iteration batch size from. Min == Max is a fixed batch.
type BatchRange struct {
	Min, Max int
}

func (r BatchRange) fixed() int { return r.Min }

// IsFixed reports whether r collapses to a single value.
func (r BatchRange) IsFixed() bool { return r.Min == r.Max }

func (r BatchRange) draw(rnd *rand.Rand) int {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rnd.IntN(r.Max-r.Min+1)
}

// Mode selects fixed-size or randomly-sized batches per loop iteration.
type Mode int

const (
	// Fixed repeats the same (eb, db) batch every iteration.
	Fixed Mode = iota
	// Random draws eb and db independently per iteration from Enq/Deq.
	Random
)

// WorkerConfig is one worker's batch configuration for the duration of a
// run. The enqueued value is always the worker-local loop index — its
// content is irrelevant to throughput measurement, per spec.
type WorkerConfig struct {
	Mode Mode
	Enq  BatchRange
	Deq  BatchRange
}

// EqualConfig builds the same WorkerConfig for all n workers.
func EqualConfig(n int, mode Mode, enq, deq BatchRange) []WorkerConfig {
	cfgs := make([]WorkerConfig, n)
	for i := range cfgs {
		cfgs[i] = WorkerConfig{Mode: mode, Enq: enq, Deq: deq}
	}
	return cfgs
}

// UnequalConfig builds one WorkerConfig per worker from explicit
// per-worker fixed batch vectors; len(enq) must equal len(deq).
func UnequalConfig(enq, deq []int) []WorkerConfig {
	cfgs := make([]WorkerConfig, len(enq))
	for i := range cfgs {
		cfgs[i] = WorkerConfig{
			Mode: Fixed,
			Enq:  BatchRange{Min: enq[i], Max: enq[i]},
			Deq:  BatchRange{Min: deq[i], Max: deq[i]},
		}
	}
	return cfgs
}

// Run executes one repetition: every worker runs its configured batch
// loop against q until duration elapses, then all per-worker Stats are
// combined. The stop signal is a single atomic flag flipped once by
// time.AfterFunc rather than each worker polling the wall clock between
// batches — spec's own blessed redesign of the C original's per-worker
// clock polling.
func Run(q mfq.Queue[int], cfgs []WorkerConfig, duration time.Duration) (mfq.Stats, []mfq.Stats) {
	n := len(cfgs)
	var stop atomix.Bool
	timer := time.AfterFunc(duration, func() { stop.StoreRelease(true) })
	defer timer.Stop()

	stats := make([]mfq.Stats, n)
	var wg sync.WaitGroup
	wg.Add(n)
	start := time.Now()
	for id := range n {
		go func(id int) {
			defer wg.Done()
			runWorker(q.Worker(id), cfgs[id], id, &stop, &stats[id])
		}(id)
	}
	wg.Wait()
	elapsed := time.Since(start)
	for i := range stats {
		stats[i].Duration = elapsed
	}
	return mfq.Combine(stats), stats
}

func runWorker(h mfq.Handle[int], cfg WorkerConfig, id int, stop *atomix.Bool, s *mfq.Stats) {
	rnd := rand.New(rand.NewPCG(uint64(id), uint64(id)<<1|1))
	i := 0
	for !stop.LoadAcquire() {
		eb, db := cfg.Enq.fixed(), cfg.Deq.fixed()
		if cfg.Mode == Random {
			eb, db = cfg.Enq.draw(rnd), cfg.Deq.draw(rnd)
		}
		for j := 0; j < eb; j++ {
			if err := h.EnqueueStats(i, s); err != nil {
				s.EnqFail++
			} else {
				s.EnqSucc++
			}
			i++
		}
		for j := 0; j < db; j++ {
			if _, err := h.DequeueStats(s); err != nil {
				s.DeqFail++
			} else {
				s.DeqSucc++
			}
		}
	}
}

// Repeat runs Run r times and keeps a rolling history of the combined
// Stats from each repetition. The history is kept
// in a deque rather than a plain slice only because that is the pack's
// grounded container for this shape of bounded rolling buffer; here it
// is never trimmed, so it behaves like an ordinary append-only log.
func Repeat(q mfq.Queue[int], cfgs []WorkerConfig, duration time.Duration, r int) *deque.Deque[mfq.Stats] {
	var history deque.Deque[mfq.Stats]
	for range r {
		combined, _ := Run(q, cfgs, duration)
		history.PushBack(combined)
	}
	return &history
}

// CorrectnessConfig parameterizes RunCorrectness.
type CorrectnessConfig struct {
	Workers  int
	Duration time.Duration
}

// CorrectnessResult is the per-worker tally from a correctness run:
// Enqueued[id] is the count worker id produced in phase 1, Dequeued[id]
// is the count attributed to origin id by the phase-2 drain.
type CorrectnessResult struct {
	Enqueued []int64
	Dequeued []int64
}

// Passed reports whether every worker's enqueue count matches its
// attributed dequeue count, per spec property 5.
func (r CorrectnessResult) Passed() bool {
	for i := range r.Enqueued {
		if r.Enqueued[i] != r.Dequeued[i] {
			return false
		}
	}
	return true
}

// RunCorrectness runs the two-phase tagged correctness check: phase 1
// has each worker id enqueue values of the form i*N+id for the
// configured duration; phase 2 drains the queue concurrently from every
// worker until empty, attributing each value v to origin v mod N.
func RunCorrectness(q mfq.Queue[int], cfg CorrectnessConfig) CorrectnessResult {
	n := cfg.Workers
	enqueued := make([]int64, n)

	var stop atomix.Bool
	timer := time.AfterFunc(cfg.Duration, func() { stop.StoreRelease(true) })
	var wg sync.WaitGroup
	wg.Add(n)
	for id := range n {
		go func(id int) {
			defer wg.Done()
			h := q.Worker(id)
			i := 0
			for !stop.LoadAcquire() {
				v := i*n + id
				if err := h.Enqueue(v); err != nil {
					break
				}
				enqueued[id]++
				i++
			}
		}(id)
	}
	wg.Wait()
	timer.Stop()

	dequeued := make([]int64, n)
	var mu sync.Mutex
	var drainWG sync.WaitGroup
	drainWG.Add(n)
	for id := range n {
		go func(id int) {
			defer drainWG.Done()
			h := q.Worker(id)
			local := make([]int64, n)
			for {
				v, err := h.Dequeue()
				if mfq.IsEmpty(err) {
					break
				}
				local[v%n]++
			}
			mu.Lock()
			for origin, c := range local {
				dequeued[origin] += c
			}
			mu.Unlock()
		}(id)
	}
	drainWG.Wait()

	return CorrectnessResult{Enqueued: enqueued, Dequeued: dequeued}
}
