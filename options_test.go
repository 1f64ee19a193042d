package mfq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfqueue/mfq"
)

func TestNewPanicsOnInvalidWorkerCount(t *testing.T) {
	require.Panics(t, func() { mfq.New(0) })
	require.Panics(t, func() { mfq.New(-1) })
}

func TestWithMaxNodesPanicsOnInvalidBudget(t *testing.T) {
	require.Panics(t, func() { mfq.New(1).WithMaxNodes(0) })
	require.Panics(t, func() { mfq.New(1).WithMaxNodes(-1) })
}

func TestBuildLockFreeAndBuildLockedShareBuilder(t *testing.T) {
	b := mfq.New(4).WithMaxNodes(16)
	lf := mfq.BuildLockFree[string](b)
	lk := mfq.BuildLocked[string](b)

	require.NotPanics(t, func() { lf.Worker(3) })
	require.NotPanics(t, func() { lk.Worker(3) })
	require.Panics(t, func() { lf.Worker(4) })
	require.Panics(t, func() { lk.Worker(4) })
}
