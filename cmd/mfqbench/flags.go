package main

import (
	"errors"
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mfqueue/mfq/internal/bench"
)

// batchSpec parses a flag.Value of the form "k" (fixed batch) or
// "min,max" (random batch range), the same grammar as the original C
// benchmark's -e/-d arguments.
type batchSpec struct {
	set bool
	r   bench.BatchRange
}

func (b *batchSpec) String() string {
	if !b.set {
		return ""
	}
	if b.r.Min == b.r.Max {
		return strconv.Itoa(b.r.Min)
	}
	return fmt.Sprintf("%d,%d", b.r.Min, b.r.Max)
}

func (b *batchSpec) Set(s string) error {
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		k, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid batch %q: %w", s, err)
		}
		b.r = bench.BatchRange{Min: k, Max: k}
	case 2:
		lo, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid batch %q: %w", s, err)
		}
		hi, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("invalid batch %q: %w", s, err)
		}
		if lo > hi {
			return fmt.Errorf("invalid batch %q: min > max", s)
		}
		b.r = bench.BatchRange{Min: lo, Max: hi}
	default:
		return fmt.Errorf("invalid batch %q: expected k or min,max", s)
	}
	b.set = true
	return nil
}

// intVector parses a flag.Value of the form "v1,v2,...,vN", used by -E
// and -D for per-worker fixed batch vectors.
type intVector struct {
	set bool
	vs  []int
}

func (v *intVector) String() string {
	ss := make([]string, len(v.vs))
	for i, x := range v.vs {
		ss[i] = strconv.Itoa(x)
	}
	return strings.Join(ss, ",")
}

func (v *intVector) Set(s string) error {
	parts := strings.Split(s, ",")
	vs := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid vector entry %q: %w", p, err)
		}
		vs[i] = n
	}
	v.vs = vs
	v.set = true
	return nil
}

// Config is the fully validated result of parsing the benchmark CLI.
type Config struct {
	Workers     int
	Duration    time.Duration
	Repetitions int
	Correctness bool
	Mode        bench.Mode
	Enq         bench.BatchRange
	Deq         bench.BatchRange
	EnqVector   []int
	DeqVector   []int
	ChartPath   string
}

// parseFlags parses args (excluding argv[0]) into a validated Config, or
// returns an error describing the first validation failure — mirroring
// the original C getopt switch followed by a validation block.
func parseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("mfqbench", flag.ContinueOnError)

	workers := fs.Int("n", runtime.GOMAXPROCS(0), "worker count")
	seconds := fs.Float64("t", 1, "duration in seconds")
	reps := fs.Int("r", 1, "repetition count")
	correctness := fs.Bool("c", false, "correctness mode (ignores batch flags except -n, -t)")
	chartPath := fs.String("o", "", "optional path to write an HTML throughput chart")

	var enq, deq batchSpec
	fs.Var(&enq, "e", "enqueue batch: k or min,max")
	fs.Var(&deq, "d", "dequeue batch: k or min,max")

	var enqVec, deqVec intVector
	fs.Var(&enqVec, "E", "per-worker fixed enqueue batch vector: v1,v2,...,vN")
	fs.Var(&deqVec, "D", "per-worker fixed dequeue batch vector: v1,v2,...,vN")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Workers:     *workers,
		Duration:    time.Duration(*seconds * float64(time.Second)),
		Repetitions: *reps,
		Correctness: *correctness,
		ChartPath:   *chartPath,
	}

	if cfg.Workers < 1 {
		return Config{}, errors.New("-n must be >= 1")
	}
	if cfg.Repetitions < 1 {
		return Config{}, errors.New("-r must be >= 1")
	}

	if enqVec.set != deqVec.set {
		return Config{}, errors.New("-E and -D must be supplied together")
	}
	if enqVec.set && (enq.set || deq.set) {
		return Config{}, errors.New("-E/-D are mutually exclusive with -e/-d")
	}

	if enqVec.set {
		if len(enqVec.vs) != cfg.Workers || len(deqVec.vs) != cfg.Workers {
			return Config{}, fmt.Errorf("-E/-D vector length must equal -n (%d)", cfg.Workers)
		}
		cfg.Mode = bench.Fixed
		cfg.EnqVector = enqVec.vs
		cfg.DeqVector = deqVec.vs
		return cfg, nil
	}

	cfg.Mode = bench.Fixed
	cfg.Enq = bench.BatchRange{Min: 1, Max: 1}
	cfg.Deq = bench.BatchRange{Min: 1, Max: 1}
	if enq.set {
		cfg.Enq = enq.r
		if !enq.r.IsFixed() {
			cfg.Mode = bench.Random
		}
	}
	if deq.set {
		cfg.Deq = deq.r
		if !deq.r.IsFixed() {
			cfg.Mode = bench.Random
		}
	}
	return cfg, nil
}
