package bench

import "github.com/kr/pretty"

// Diagnose renders a CorrectnessResult as a per-field diff-friendly
// dump, for test failure output when the conservation check does not
// hold. Tests are the only caller; a passing run never needs it.
func Diagnose(result CorrectnessResult) string {
	return pretty.Sprint(result)
}
