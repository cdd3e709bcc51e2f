package trajguess

import (
	"fmt"
	"math"

	"github.com/vovakirdan/trajguess/internal/core"
	"github.com/vovakirdan/trajguess/internal/trajectory"
)

const (
	minScreenW = 50
	minScreenH = 14
	hudHeight  = 2
)

var hexHalf = math.Sqrt(3) / 2

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenW < minScreenW || g.screenH < minScreenH {
		g.renderTooSmall(dst)
		return
	}
	if g.phase == PhaseFailed || g.match == nil || g.match.Current() == nil {
		g.renderFailed(dst)
		return
	}

	round := g.match.Current()
	g.renderHUD(dst, round)

	body := core.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight-1)
	world, relative := body.SplitH(g.screenW * 3 / 5)
	g.renderWorld(dst, world, round)
	g.renderRelative(dst, relative, round)
	g.renderFooter(dst)

	switch {
	case g.phase == PhaseGameOver:
		g.renderGameOver(dst)
	case g.paused:
		dst.DrawTextCentered(g.screenH/2, " PAUSED ", core.ColorBrightYellow)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH), core.ColorGray)
}

func (g *Game) renderFailed(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Could not generate a round", core.ColorRed)
	if g.err != nil {
		dst.DrawTextCentered(y+1, g.err.Error(), core.ColorGray)
	}
}

// renderHUD draws round, player and score lines.
func (g *Game) renderHUD(dst *core.Screen, round *Round) {
	p := g.match.Active()
	dst.DrawTextColored(1, 0, g.variant.Title, core.ColorBrightCyan)
	turn := fmt.Sprintf("Round %d/%d  %s  Total %.1f", g.match.RoundNumber(), g.match.TotalRounds(), p.Name, p.Total)
	dst.DrawTextColored(g.screenW-len(turn)-1, 0, turn, core.ColorWhite)

	guess := round.Guess()
	if res, ok := round.Result(); ok {
		line := fmt.Sprintf("Similarity %.1f%%  Score %.2f  Time %.1fs", res.Similarity*100, res.Score, res.Elapsed)
		dst.DrawTextColored(1, 1, line, core.ColorBrightGreen)
		next := "Enter: next round"
		if g.match.Done() {
			next = "Enter: results"
		}
		dst.DrawTextColored(g.screenW-len(next)-1, 1, next, core.ColorGray)
		return
	}
	line := fmt.Sprintf("Steps %d  Placed %d/%d  Time %.1fs", round.Steps, guess.Len(), round.Actual.Len(), g.Elapsed())
	dst.DrawTextColored(1, 1, line, core.ColorWhite)
	if guess.Full() {
		dst.DrawTextColored(g.screenW-17, 1, "Enter: submit", core.ColorYellow)
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := g.screenH - 1
	x := 1
	for _, item := range []struct {
		text  string
		color core.Color
	}{
		{"A", core.ColorBlue},
		{"B start", core.ColorYellow},
		{"guess", core.ColorCyan},
		{"B actual", core.ColorMagenta},
		{"hit", core.ColorBrightGreen},
		{"cursor", core.ColorBrightYellow},
	} {
		dst.DrawTextColored(x, y, "■ "+item.text, item.color)
		x += len(item.text) + 4
	}
}

// renderWorld draws A, B's start, the guess and, after submit, B's true path.
func (g *Game) renderWorld(dst *core.Screen, area core.Rect, round *Round) {
	dst.DrawBox(area, core.ColorGray)
	dst.DrawTextColored(area.X+2, area.Y, " World ", core.ColorWhite)

	guess := round.Guess()
	guessed := guess.Path()
	revealed := round.Submitted()

	cells := round.Reference.Cells()
	cells = append(cells, guessed.Cells()...)
	if revealed {
		cells = append(cells, round.Actual.Cells()...)
	} else {
		cells = append(cells, guess.Cursor())
	}
	vp := newViewport(round.Set, area.Inset(1), cells)

	for i, c := range round.Reference.Cells() {
		vp.plot(dst, c, digit(i), core.ColorBlue)
	}
	if revealed {
		for i, c := range round.Actual.Cells() {
			color := core.ColorMagenta
			if gc, err := guessed.Cell(i); err == nil && gc.Equal(c) {
				color = core.ColorBrightGreen
			}
			vp.plot(dst, c, digit(i), color)
		}
	}
	for i, c := range guessed.Cells() {
		color := core.ColorCyan
		if ac, err := round.Actual.Cell(i); revealed && err == nil && ac.Equal(c) {
			color = core.ColorBrightGreen
		}
		vp.plot(dst, c, digit(i), color)
	}
	vp.plot(dst, round.Start(), 'B', core.ColorYellow)

	if !revealed {
		x, y := vp.at(guess.Cursor())
		r := dst.Get(x, y)
		if r == ' ' {
			r = '+'
		}
		vp.put(dst, x, y, r, core.ColorBrightYellow)
	}
}

// renderRelative draws B's path in its own frame.
func (g *Game) renderRelative(dst *core.Screen, area core.Rect, round *Round) {
	dst.DrawBox(area, core.ColorGray)
	dst.DrawTextColored(area.X+2, area.Y, " B relative to A ", core.ColorWhite)

	vp := newViewport(round.Set, area.Inset(1), round.Relative.Cells())
	for i, c := range round.Relative.Cells() {
		vp.plot(dst, c, digit(i), core.ColorMagenta)
	}
	if start, err := round.Relative.Cell(0); err == nil {
		vp.plot(dst, start, 'B', core.ColorYellow)
	}
}

// renderGameOver draws the final standings.
func (g *Game) renderGameOver(dst *core.Screen) {
	players := g.match.Players()
	lines := []string{"MATCH OVER", ""}
	for _, p := range players {
		best, _ := p.Best()
		lines = append(lines, fmt.Sprintf("%-10s total %7.2f  best %6.2f  time %5.1fs", p.Name, p.Total, best.Score, p.TimeTaken))
	}
	if len(players) > 1 {
		lines = append(lines, "", fmt.Sprintf("Winner: %s", g.match.Leader().Name))
	}
	lines = append(lines, "", "R restart  B menu  Ctrl+C quit")

	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	box := core.NewRect((g.screenW-w-4)/2, (g.screenH-len(lines)-2)/2, w+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightCyan)
	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightYellow
		}
		dst.DrawTextColored(box.X+2, box.Y+1+i, l, color)
	}
}

func digit(i int) rune {
	return rune('0' + i%10)
}

// viewport maps lattice cells into a screen rectangle, centred on the
// bounding box of the cells it was built from. Cells outside are clipped.
type viewport struct {
	set    trajectory.DirectionSet
	area   core.Rect
	dx, dy int
}

func newViewport(set trajectory.DirectionSet, area core.Rect, cells []trajectory.Cell) viewport {
	vp := viewport{set: set, area: area}
	if len(cells) == 0 {
		return vp
	}
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for _, c := range cells {
		x, y := vp.raw(c)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	vp.dx = area.X + (area.W-(maxX-minX+1))/2 - minX
	vp.dy = area.Y + (area.H-(maxY-minY+1))/2 - minY
	return vp
}

// raw projects a cell to unshifted screen units. Four-way cells are two
// columns apart; hex cells use doubled columns so every neighbour is one
// row or two columns away.
func (vp viewport) raw(c trajectory.Cell) (int, int) {
	if vp.set == trajectory.Six {
		return int(math.Round(c.Col / hexHalf)), int(math.Round(c.Row / 1.5))
	}
	return 2 * int(math.Round(c.Col)), int(math.Round(c.Row))
}

func (vp viewport) at(c trajectory.Cell) (int, int) {
	x, y := vp.raw(c)
	return x + vp.dx, y + vp.dy
}

func (vp viewport) plot(dst *core.Screen, c trajectory.Cell, r rune, color core.Color) {
	x, y := vp.at(c)
	vp.put(dst, x, y, r, color)
}

func (vp viewport) put(dst *core.Screen, x, y int, r rune, color core.Color) {
	if !vp.area.Contains(x, y) {
		return
	}
	dst.SetColored(x, y, r, color)
}
