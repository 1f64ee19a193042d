package bench

import (
	"fmt"
	"io"

	"github.com/gammazero/deque"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mfqueue/mfq"
)

// WriteThroughputChart renders a per-repetition throughput line chart
// from a Repeat history. This has no equivalent in the original C
// benchmark — it is pure enrichment behind the CLI's optional -o flag,
// not a substitute for the text report.
func WriteThroughputChart(w io.Writer, history *deque.Deque[mfq.Stats]) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "mfq throughput per repetition",
			Subtitle: "enq_succ + deq_succ, combined across workers",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "repetition"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ops/sec"}),
	)

	n := history.Len()
	xs := make([]string, n)
	points := make([]opts.LineData, n)
	for i := range n {
		s := history.At(i)
		xs[i] = fmt.Sprintf("%d", i+1)
		var opsPerSec float64
		if secs := s.Duration.Seconds(); secs > 0 {
			opsPerSec = float64(s.EnqSucc+s.DeqSucc) / secs
		}
		points[i] = opts.LineData{Value: opsPerSec}
	}

	line.SetXAxis(xs).AddSeries("throughput", points)
	return line.Render(w)
}
