package api

import (
	"fmt"
	"html"
	"strings"
)

const (
	chartWidth  = 900
	chartHeight = 420
	chartPad    = 50
)

// lineChartHTML renders a series as an HTML page with an inline SVG polyline.
func lineChartHTML(title, yLabel string, ys []float64) string {
	minY, maxY := ys[0], ys[0]
	for _, y := range ys {
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	span := maxY - minY
	if span == 0 {
		span = 1
	}

	plotW := float64(chartWidth - 2*chartPad)
	plotH := float64(chartHeight - 2*chartPad)

	var points strings.Builder
	for i, y := range ys {
		x := float64(chartPad)
		if len(ys) > 1 {
			x += plotW * float64(i) / float64(len(ys)-1)
		}
		py := float64(chartHeight-chartPad) - plotH*(y-minY)/span
		fmt.Fprintf(&points, "%.1f,%.1f ", x, py)
	}

	svg := fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="white"/>
<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>
<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>
<text x="%d" y="20" font-size="16">%s</text>
<text x="8" y="%d" font-size="12">%.4g</text>
<text x="8" y="%d" font-size="12">%.4g</text>
<text x="8" y="32" font-size="12">%s</text>
<polyline fill="none" stroke="steelblue" stroke-width="2" points="%s"/>
</svg>`,
		chartWidth, chartHeight,
		chartPad, chartHeight-chartPad, chartWidth-chartPad, chartHeight-chartPad,
		chartPad, chartPad, chartPad, chartHeight-chartPad,
		chartPad, html.EscapeString(title),
		chartHeight-chartPad, minY,
		chartPad+8, maxY,
		html.EscapeString(yLabel),
		points.String(),
	)

	return fmt.Sprintf(`<html><head><title>%s</title></head><body><h3>%s (%d samples)</h3>%s</body></html>`,
		html.EscapeString(title), html.EscapeString(title), len(ys), svg)
}

// emptyChartHTML renders a placeholder page when no data is recorded.
func emptyChartHTML(msg string) string {
	return fmt.Sprintf("<html><body><h3>%s</h3></body></html>", html.EscapeString(msg))
}
