package export

import (
	"fmt"
	"html"
	"math"
	"strings"
)

// Series is one named line in an SVG plot.
type Series struct {
	Name   string
	Values []float64
}

var palette = []string{"#00ff88", "#00ccff", "#ffcc00", "#ff00ff", "#ff4444", "#ffffff"}

// TrajectoryToSVG plots every series against x. With logY the y axis is
// log10 and non-positive samples are dropped. It returns "" when there is
// nothing to draw.
func TrajectoryToSVG(x []float64, series []Series, width, height int, logY bool) string {
	if len(x) < 2 || len(series) == 0 {
		return ""
	}

	transform := func(v float64) (float64, bool) {
		if logY {
			if v <= 0 {
				return 0, false
			}
			v = math.Log10(v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	}

	minX, maxX := x[0], x[len(x)-1]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for i := 0; i < len(s.Values) && i < len(x); i++ {
			if v, ok := transform(s.Values[i]); ok {
				minY = math.Min(minY, v)
				maxY = math.Max(maxY, v)
			}
		}
	}
	if math.IsInf(minY, 1) {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for si, s := range series {
		color := palette[si%len(palette)]
		var d strings.Builder
		pen := "M"
		for i := 0; i < len(s.Values) && i < len(x); i++ {
			v, ok := transform(s.Values[i])
			if !ok {
				pen = "M"
				continue
			}
			px := (x[i] - minX) / rangeX * float64(width)
			py := float64(height) - (v-minY)/rangeY*float64(height)
			if d.Len() > 0 {
				d.WriteByte(' ')
			}
			fmt.Fprintf(&d, "%s%.1f,%.1f", pen, px, py)
			pen = "L"
		}
		if d.Len() == 0 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, color, d.String())
		fmt.Fprintf(&sb, `<text x="10" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 18+16*si, color, html.EscapeString(s.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
