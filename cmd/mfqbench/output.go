package main

import (
	"fmt"
	"io"

	"github.com/mfqueue/mfq"
	"github.com/mfqueue/mfq/internal/bench"
)

// printReport writes the per-worker and summary stats blocks, the same
// shape as the original C print_stats output: one "Thread: i" block per
// worker followed by one "Summary" aggregate block.
func printReport(w io.Writer, perWorker []mfq.Stats, combined mfq.Stats) {
	for i, s := range perWorker {
		fmt.Fprintf(w, "Thread: %d %s\n", i, s)
	}
	fmt.Fprintf(w, "Summary %s\n", combined)
}

// printCorrectness writes the pass/fail line and the per-worker
// E_id == D_id / E_id != D_id table.
func printCorrectness(w io.Writer, result bench.CorrectnessResult) {
	if result.Passed() {
		fmt.Fprintln(w, "Correctness check passed")
	} else {
		fmt.Fprintln(w, "Correctness check not passed")
	}
	for id := range result.Enqueued {
		e, d := result.Enqueued[id], result.Dequeued[id]
		if e == d {
			fmt.Fprintf(w, "%d: %d == %d\n", id, e, d)
		} else {
			fmt.Fprintf(w, "%d: %d != %d x\n", id, e, d)
		}
	}
}
