// Package export renders finished traces to files: SVG time series and
// JSON dumps for downstream analysis.
package export

import (
	"fmt"
	"strings"

	"github.com/sontheimer/TVB-NEST-v1/internal/experiment"
)

var regionColors = []string{
	"#00ff00", "#00c8ff", "#ff8800", "#ff00aa",
	"#ffff00", "#aa66ff", "#ff4444", "#44ffcc",
}

// TraceToSVG plots one trace against time as a polyline.
func TraceToSVG(times, values []float64, width, height int, strokeColor string) string {
	if len(times) < 2 || len(times) != len(values) {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(width, height))
	writePolyline(&sb, times, values, bounds(values), width, height, strokeColor)
	sb.WriteString("</svg>")
	return sb.String()
}

// ResultToSVG plots every region of a result on shared axes, cycling
// through the color palette.
func ResultToSVG(res *experiment.Result, width, height int) string {
	if len(res.Times) < 2 || len(res.States) == 0 {
		return ""
	}

	nregions := len(res.States[0])
	lo, hi := res.States[0][0], res.States[0][0]
	for _, row := range res.States {
		for _, v := range row {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(width, height))
	for r := 0; r < nregions; r++ {
		trace := make([]float64, len(res.States))
		for k, row := range res.States {
			trace[k] = row[r]
		}
		writePolyline(&sb, res.Times, trace, [2]float64{lo, hi},
			width, height, regionColors[r%len(regionColors)])
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func svgHeader(width, height int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

func bounds(values []float64) [2]float64 {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return [2]float64{lo, hi}
}

func writePolyline(sb *strings.Builder, times, values []float64, vb [2]float64,
	width, height int, strokeColor string) {

	t0, t1 := times[0], times[len(times)-1]
	rangeT := t1 - t0
	if rangeT == 0 {
		rangeT = 1
	}
	lo, hi := vb[0], vb[1]
	rangeV := hi - lo
	if rangeV == 0 {
		rangeV = 1
	}
	lo -= rangeV * 0.1
	hi += rangeV * 0.1
	rangeV = hi - lo

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i := range times {
		x := (times[i] - t0) / rangeT * float64(width)
		y := float64(height) - (values[i]-lo)/rangeV*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}
