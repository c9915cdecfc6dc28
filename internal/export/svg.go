package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/rigidsim/internal/storage"
)

var palette = []string{"#00ff88", "#ff00ff", "#00ccff", "#ffcc00", "#ff4444", "#88ff88"}

type Point struct{ X, Y float64 }

// Trajectory is the planar path of one body: the first two position
// components, or (x, 0) for 1D scenes.
type Trajectory struct {
	ID     int64
	Name   string
	Points []Point
}

// Trajectories groups records by body in id order. names[i] labels body i.
func Trajectories(records []storage.Record, names []string) []Trajectory {
	byID := make(map[int64]int)
	out := make([]Trajectory, 0, len(names))

	for _, r := range records {
		idx, ok := byID[r.ID]
		if !ok {
			name := fmt.Sprintf("#%d", r.ID)
			if r.ID >= 0 && int(r.ID) < len(names) {
				name = names[r.ID]
			}
			idx = len(out)
			byID[r.ID] = idx
			out = append(out, Trajectory{ID: r.ID, Name: name})
		}

		var p Point
		if len(r.Position) > 0 {
			p.X = r.Position[0]
		}
		if len(r.Position) > 1 {
			p.Y = r.Position[1]
		}
		if finite(p.X) && finite(p.Y) {
			out[idx].Points = append(out[idx].Points, p)
		}
	}
	return out
}

// TrajectoriesToSVG draws every trajectory on one shared scale, marking
// each body's final position.
func TrajectoriesToSVG(trajs []Trajectory, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, t := range trajs {
		for _, p := range t.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		minX, maxX, minY, maxY = 0, 1, 0, 1
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	project := func(p Point) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, t := range trajs {
		if len(t.Points) == 0 {
			continue
		}
		color := palette[i%len(palette)]

		if len(t.Points) > 1 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
			for j, p := range t.Points {
				x, y := project(p)
				if j == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		x, y := project(t.Points[len(t.Points)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="12">%s</text>
`, x, y, color, x+6, y-6, color, escape(t.Name)))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
