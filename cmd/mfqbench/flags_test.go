package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfqueue/mfq/internal/bench"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags([]string{"-n", "4"})
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, 1, cfg.Repetitions)
	require.False(t, cfg.Correctness)
}

func TestParseFlagsFixedBatch(t *testing.T) {
	cfg, err := parseFlags([]string{"-n", "4", "-e", "10", "-d", "10"})
	require.NoError(t, err)
	require.Equal(t, bench.Fixed, cfg.Mode)
	require.Equal(t, bench.BatchRange{Min: 10, Max: 10}, cfg.Enq)
	require.Equal(t, bench.BatchRange{Min: 10, Max: 10}, cfg.Deq)
}

func TestParseFlagsRandomBatchRange(t *testing.T) {
	cfg, err := parseFlags([]string{"-n", "4", "-e", "5,20", "-d", "1,3"})
	require.NoError(t, err)
	require.Equal(t, bench.Random, cfg.Mode)
	require.Equal(t, bench.BatchRange{Min: 5, Max: 20}, cfg.Enq)
}

func TestParseFlagsRejectsInvertedRange(t *testing.T) {
	_, err := parseFlags([]string{"-n", "4", "-e", "20,5"})
	require.Error(t, err)
}

func TestParseFlagsUnequalVectors(t *testing.T) {
	cfg, err := parseFlags([]string{"-n", "4", "-E", "20,0,20,0", "-D", "0,20,0,20"})
	require.NoError(t, err)
	require.Equal(t, []int{20, 0, 20, 0}, cfg.EnqVector)
	require.Equal(t, []int{0, 20, 0, 20}, cfg.DeqVector)
}

func TestParseFlagsRejectsUnpairedVectors(t *testing.T) {
	_, err := parseFlags([]string{"-n", "4", "-E", "1,2,3,4"})
	require.Error(t, err)
}

func TestParseFlagsRejectsVectorsMixedWithBatchFlags(t *testing.T) {
	_, err := parseFlags([]string{"-n", "4", "-E", "1,2,3,4", "-D", "1,2,3,4", "-e", "5"})
	require.Error(t, err)
}

func TestParseFlagsRejectsVectorLengthMismatch(t *testing.T) {
	_, err := parseFlags([]string{"-n", "4", "-E", "1,2,3", "-D", "1,2,3"})
	require.Error(t, err)
}

func TestParseFlagsRejectsZeroWorkers(t *testing.T) {
	_, err := parseFlags([]string{"-n", "0"})
	require.Error(t, err)
}

func TestParseFlagsCorrectnessMode(t *testing.T) {
	cfg, err := parseFlags([]string{"-n", "4", "-c", "-t", "2"})
	require.NoError(t, err)
	require.True(t, cfg.Correctness)
}
