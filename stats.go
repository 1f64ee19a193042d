package mfq

import (
	"fmt"
	"time"
)

// Stats is one worker's counters for a run. Counters are per-worker and
// need no atomic protection: only the owning goroutine ever touches its
// own Stats value.
type Stats struct {
	Duration time.Duration

	EnqSucc int64
	EnqFail int64
	DeqSucc int64
	DeqFail int64

	FreelistInsert int64
	FreelistLen    int64
	FreelistMax    int64

	CasSucc int64
	CasFail int64
}

// recordCAS records the outcome of one CAS attempt, including a helping
// CAS that advances tail — a benign failure there still counts as
// CasFail, matching spec's accounting.
func (s *Stats) recordCAS(ok bool) {
	if s == nil {
		return
	}
	if ok {
		s.CasSucc++
	} else {
		s.CasFail++
	}
}

func (s *Stats) recordFreelistPush() {
	if s == nil {
		return
	}
	s.FreelistInsert++
	s.FreelistLen++
	if s.FreelistLen > s.FreelistMax {
		s.FreelistMax = s.FreelistLen
	}
}

func (s *Stats) recordFreelistPop() {
	if s == nil {
		return
	}
	s.FreelistLen--
}

// Combine sums per-worker counters, averages Duration, and takes the max
// of FreelistMax — the same reduction as the original C comb_stats.
func Combine(ss []Stats) Stats {
	var out Stats
	for _, s := range ss {
		out.Duration += s.Duration
		out.EnqSucc += s.EnqSucc
		out.EnqFail += s.EnqFail
		out.DeqSucc += s.DeqSucc
		out.DeqFail += s.DeqFail
		out.FreelistInsert += s.FreelistInsert
		out.FreelistLen += s.FreelistLen
		if s.FreelistMax > out.FreelistMax {
			out.FreelistMax = s.FreelistMax
		}
		out.CasSucc += s.CasSucc
		out.CasFail += s.CasFail
	}
	if len(ss) > 0 {
		out.Duration /= time.Duration(len(ss))
	}
	return out
}

// String renders the counters the way the original C print_stats does.
func (s Stats) String() string {
	return fmt.Sprintf(
		"STATS:\n duration: %f sec\n enq_succ: %d\n enq_fail: %d\n deq_succ: %d\n deq_fail: %d\n freelist_insert: %d\n freelist_max: %d\n cas_succ: %d\n cas_fail: %d",
		s.Duration.Seconds(), s.EnqSucc, s.EnqFail, s.DeqSucc, s.DeqFail,
		s.FreelistInsert, s.FreelistMax, s.CasSucc, s.CasFail,
	)
}
