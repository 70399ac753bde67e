package dashboard

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renaudg/netdash/internal/engine"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '\u2800'

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3}, // Row 0: dots 1 and 4
	{1, 4}, // Row 1: dots 2 and 5
	{2, 5}, // Row 2: dots 3 and 6
	{6, 7}, // Row 3: dots 7 and 8
}

// GraphWindow is the fixed horizontal span of the graph in sequence units.
// Points older than latest-GraphWindow are not drawn even if retained.
const GraphWindow = 300.0

// WindowMax returns the vertical bound for the visible window: the largest
// throughput at or after xMin, floored at 1.0 so an idle interface still
// renders a flat line near the bottom rather than dividing by zero.
// Recomputed every frame; a single spike rescales the window immediately.
func WindowMax(points []engine.Point, xMin float64) float64 {
	maxVal := 1.0
	for _, p := range points {
		if p.Seq >= xMin && p.Mbps > maxVal {
			maxVal = p.Mbps
		}
	}
	return maxVal
}

// RenderBrailleGraph plots a throughput series as a braille line graph.
// The x window is [xMax-GraphWindow, xMax]; the y range is [0, yMax].
// Consecutive visible points are joined by line segments on the dot grid.
func RenderBrailleGraph(points []engine.Point, width, height int, xMax, yMax float64, color lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	cols := width * 2
	rows := height * 4
	xMin := xMax - GraphWindow
	if yMax <= 0 {
		yMax = 1.0
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}

	plot := func(dx, dy int) {
		if dx < 0 || dx >= cols || dy < 0 || dy >= rows {
			return
		}
		// dy counts from the bottom; braille rows count from the top.
		row := height - 1 - dy/4
		subRow := 3 - dy%4
		grid[row][dx/2] |= rune(1 << brailleDots[subRow][dx%2])
	}

	toDot := func(p engine.Point) (int, int) {
		dx := int((p.Seq - xMin) / GraphWindow * float64(cols-1))
		dy := int(p.Mbps / yMax * float64(rows-1))
		return dx, dy
	}

	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		if b.Seq < xMin {
			continue
		}
		x0, y0 := toDot(a)
		x1, y1 := toDot(b)
		drawSegment(plot, x0, y0, x1, y1)
	}
	if len(points) == 1 && points[0].Seq >= xMin {
		plot(toDot(points[0]))
	}

	style := lipgloss.NewStyle().Foreground(color)
	lines := make([]string, height)
	for i, row := range grid {
		lines[i] = style.Render(string(row))
	}
	return strings.Join(lines, "\n")
}

// drawSegment rasterizes a line between two dot-grid coordinates using
// Bresenham's algorithm.
func drawSegment(plot func(x, y int), x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SelectGraphSeries picks which interface the single graph panel shows.
// Tunnel-lane interfaces holding an address are time-multiplexed on odd
// cycle indexes (round-robin by cycle/2); even indexes show the first
// addressed physical or wireless uplink. Returns nil when nothing has an
// address, which renders as a placeholder.
func SelectGraphSeries(samples []*engine.InterfaceSample, addressed map[string]bool, cycle int) *engine.InterfaceSample {
	var tunnels, physical []*engine.InterfaceSample
	for _, s := range samples {
		if !addressed[s.Name] {
			continue
		}
		switch s.Lane {
		case engine.LaneTunnel:
			tunnels = append(tunnels, s)
		case engine.LanePhysical, engine.LaneWireless:
			physical = append(physical, s)
		}
	}
	sort.Slice(tunnels, func(i, j int) bool { return tunnels[i].Name < tunnels[j].Name })
	sort.Slice(physical, func(i, j int) bool { return physical[i].Name < physical[j].Name })

	if cycle%2 != 0 && len(tunnels) > 0 {
		return tunnels[(cycle/2)%len(tunnels)]
	}
	if len(physical) > 0 {
		return physical[0]
	}
	return nil
}
