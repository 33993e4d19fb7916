package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/ellipsim/ellipsim/internal/geom"
)

// CanvasSVG rasterizes a Braille canvas into an SVG of lit dots.
func CanvasSVG(canvas *Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// OrbitSVG renders the curve outline together with the recorded particle
// positions. angles holds one angular trajectory per particle, all sampled
// at the same instants.
func OrbitSVG(shape geom.Ellipse, angles [][]float64, width, height int) string {
	margin := 1.1
	halfW := shape.A * margin
	halfH := shape.B * margin
	scale := math.Min(float64(width)/(2*halfW), float64(height)/(2*halfH))
	mapX := func(x float64) float64 { return float64(width)/2 + x*scale }
	mapY := func(y float64) float64 { return float64(height)/2 - y*scale }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Curve outline.
	sb.WriteString(`<path fill="none" stroke="#444444" stroke-width="1" d="M`)
	const samples = 256
	for i := 0; i <= samples; i++ {
		theta := 2 * math.Pi * float64(i) / samples
		x, y := shape.Position(theta)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", mapX(x), mapY(y)))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", mapX(x), mapY(y)))
		}
	}
	sb.WriteString("Z\"/>\n")

	colors := []string{"#00ff00", "#00ccff", "#ff66cc", "#ffcc00", "#ff4444", "#aa88ff"}
	for p, traj := range angles {
		if len(traj) == 0 {
			continue
		}
		color := colors[p%len(colors)]
		// Final position as a marker, earlier samples as a faded path.
		if len(traj) > 1 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.5" stroke-width="1.5" d="M`, color))
			for i, theta := range traj {
				x, y := shape.Position(theta)
				if i == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", mapX(x), mapY(y)))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", mapX(x), mapY(y)))
				}
			}
			sb.WriteString("\"/>\n")
		}
		x, y := shape.Position(traj[len(traj)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, mapX(x), mapY(y), color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
