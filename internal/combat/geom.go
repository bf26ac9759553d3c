package combat

import "fmt"

type Cell struct{ X, Y int }

func (c Cell) Add(d Cell) Cell      { return Cell{c.X + d.X, c.Y + d.Y} }
func (c Cell) String() string       { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }
func (c Cell) Adjacent(o Cell) bool { return manhattan(c, o) == 1 }

func manhattan(a, b Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Board is a bounded grid. The movement board and the spawn board are configured
// separately and are not assumed to agree.
type Board struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

var (
	MoveBoard  = Board{Width: 27, Height: 21}
	SpawnBoard = Board{Width: 3, Height: 21}
)

func (b Board) Contains(c Cell) bool {
	return c.X >= 0 && c.X < b.Width && c.Y >= 0 && c.Y < b.Height
}

func (b Board) Cells() int { return b.Width * b.Height }

func (b Board) index(c Cell) int { return c.Y*b.Width + c.X }

func (b Board) cellAt(i int) Cell { return Cell{X: i % b.Width, Y: i / b.Width} }

// fixed order keeps searches reproducible
var steps = [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func (b Board) neighbors(c Cell, out []Cell) []Cell {
	out = out[:0]
	for _, d := range steps {
		n := c.Add(d)
		if b.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Mirror reflects a cell across the vertical axis of b. Side B armies generated on the
// spawn board are deployed to the far edge of the move board this way.
func (b Board) Mirror(c Cell) Cell {
	return Cell{X: b.Width - 1 - c.X, Y: c.Y}
}
