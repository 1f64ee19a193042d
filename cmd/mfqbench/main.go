// Command mfqbench drives mfq.LockFree from a fixed worker team and
// reports throughput or, in correctness mode, a per-worker conservation
// check, the Go-native replacement for the
// original C benchmark's getopt-driven main().
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"github.com/gammazero/deque"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/mfqueue/mfq"
	"github.com/mfqueue/mfq/internal/bench"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	})); err != nil {
		logger.Warn("GOMAXPROCS tuning skipped", "err", err)
	}
	if _, err := memlimit.SetGoMemLimitWithOpts(memlimit.WithRatio(0.9)); err != nil {
		logger.Warn("GOMEMLIMIT tuning skipped", "err", err)
	}

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Correctness {
		runCorrectnessMode(logger, cfg)
		return
	}
	runBenchmarkMode(logger, cfg)
}

func runCorrectnessMode(logger *slog.Logger, cfg Config) {
	logger.Info("starting correctness check", "workers", cfg.Workers, "duration", cfg.Duration)
	q := mfq.BuildLockFree[int](mfq.New(cfg.Workers))
	result := bench.RunCorrectness(q, bench.CorrectnessConfig{
		Workers:  cfg.Workers,
		Duration: cfg.Duration,
	})
	printCorrectness(os.Stdout, result)
	if !result.Passed() {
		os.Exit(1)
	}
}

func runBenchmarkMode(logger *slog.Logger, cfg Config) {
	q := mfq.BuildLockFree[int](mfq.New(cfg.Workers))

	var cfgs []bench.WorkerConfig
	if cfg.EnqVector != nil {
		cfgs = bench.UnequalConfig(cfg.EnqVector, cfg.DeqVector)
	} else {
		cfgs = bench.EqualConfig(cfg.Workers, cfg.Mode, cfg.Enq, cfg.Deq)
	}

	var history deque.Deque[mfq.Stats]
	for rep := 0; rep < cfg.Repetitions; rep++ {
		combined, perWorker := bench.Run(q, cfgs, cfg.Duration)
		fmt.Printf("--- repetition %d ---\n", rep+1)
		printReport(os.Stdout, perWorker, combined)
		history.PushBack(combined)
	}

	if cfg.ChartPath != "" {
		f, err := os.Create(cfg.ChartPath)
		if err != nil {
			logger.Error("failed to create chart file", "path", cfg.ChartPath, "err", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := bench.WriteThroughputChart(f, &history); err != nil {
			logger.Error("failed to write chart", "err", err)
			os.Exit(1)
		}
	}
}
