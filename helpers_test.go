package mfq_test

import (
	"testing"
	"time"

	"code.hybscloud.com/iox"
)

// retryWithTimeout retries f until it returns true or timeout expires,
// mirroring the teacher package's own test helper of the same shape.
func retryWithTimeout(t *testing.T, timeout time.Duration, f func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for !f() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v: %s", timeout, msg)
		}
		backoff.Wait()
	}
}
