package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/globalkin/internal/dynamo"
	"github.com/san-kum/globalkin/internal/viz"
)

const barWidth = 30

// LiveRenderer is a run observer that redraws one progress line at most
// frameRate times per second.
type LiveRenderer struct {
	out       io.Writer
	labels    []string
	t0, tEnd  float64
	frameRate int
	lastFrame time.Time
	now       func() time.Time
}

func NewLiveRenderer(out io.Writer, labels []string, t0, tEnd float64, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 10
	}
	return &LiveRenderer{
		out:       out,
		labels:    labels,
		t0:        t0,
		tEnd:      tEnd,
		frameRate: frameRate,
		now:       time.Now,
	}
}

func (r *LiveRenderer) OnStep(x dynamo.State, t float64) {
	now := r.now()
	if now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	fmt.Fprint(r.out, "\r"+r.line(x, t))
}

// Stop ends the progress line.
func (r *LiveRenderer) Stop() { fmt.Fprintln(r.out) }

func (r *LiveRenderer) line(x dynamo.State, t float64) string {
	frac := 0.0
	if span := r.tEnd - r.t0; span > 0 {
		frac = (t - r.t0) / span
	}
	frac = max(0, min(frac, 1))
	filled := int(frac * barWidth)

	var b strings.Builder
	b.WriteString("[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "] ")
	b.WriteString(fmt.Sprintf("%3.0f%% t=%.3es", 100*frac, t))
	for i, v := range x {
		label := fmt.Sprintf("x%d", i)
		if i < len(r.labels) {
			label = r.labels[i]
		}
		b.WriteString(" " + viz.MetricLabel.Render(label+"=") + viz.MetricValue.Render(fmt.Sprintf("%.3e", v)))
	}
	return b.String()
}
