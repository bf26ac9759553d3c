package combat

import (
	"container/heap"

	"go.uber.org/zap"
)

type SearchStrategy string

const (
	SearchAStar   SearchStrategy = "astar"
	SearchUniform SearchStrategy = "uniform"
)

type Path []Cell

func (p Path) Empty() bool { return len(p) == 0 }

// Steps is the number of moves along the path.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Pathfinder finds shortest 4-connected paths on a bounded board. Occupied cells are
// walls, except the goal, so a unit can path up to an occupied target.
type Pathfinder struct {
	Board    Board
	Strategy SearchStrategy
	Log      *zap.Logger
}

func NewPathfinder(board Board, strategy SearchStrategy, log *zap.Logger) *Pathfinder {
	if log == nil {
		log = zap.NewNop()
	}
	if strategy == "" {
		strategy = SearchAStar
	}
	return &Pathfinder{Board: board, Strategy: strategy, Log: log}
}

// FindUnitPath paths from attacker to target around every living unit in units.
func (pf *Pathfinder) FindUnitPath(attacker, target Unit, units []Unit) Path {
	occ := make(map[Cell]bool, len(units))
	for _, u := range units {
		if u.Alive() {
			occ[u.Position()] = true
		}
	}
	p := pf.search(attacker.Position(), target.Position(), occ)
	if p.Empty() {
		pf.log().Debug("no path",
			zap.String("attacker", attacker.Name()), zap.String("target", target.Name()))
	}
	return p
}

// FindPath returns a shortest 4-connected path from start to goal, both included, or an
// empty path when either end is off the board or the goal cannot be reached. Occupied cells
// are never crossed; the goal itself may be occupied.
func (pf *Pathfinder) FindPath(start, goal Cell, occupied map[Cell]bool) Path {
	p := pf.search(start, goal, occupied)
	if p.Empty() {
		pf.log().Debug("no path", zap.Stringer("start", start), zap.Stringer("goal", goal))
	}
	return p
}

func (pf *Pathfinder) search(start, goal Cell, occupied map[Cell]bool) Path {
	if !pf.Board.Contains(start) || !pf.Board.Contains(goal) {
		return nil
	}
	if start == goal {
		return Path{start}
	}
	if pf.Strategy == SearchUniform {
		return pf.uniform(start, goal, occupied)
	}
	return pf.astar(start, goal, occupied)
}

func (pf *Pathfinder) log() *zap.Logger {
	if pf.Log == nil {
		return zap.NewNop()
	}
	return pf.Log
}

func passable(c, goal Cell, occupied map[Cell]bool) bool {
	return c == goal || !occupied[c]
}

// --- frontier ---

type frontierItem struct {
	cell Cell
	g    int
	f    int
	seq  int
}

// frontier orders by f, then by insertion so equal-priority ties are reproducible.
type frontier []frontierItem

func (q frontier) Len() int { return len(q) }
func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}
func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *frontier) Push(x any)   { *q = append(*q, x.(frontierItem)) }
func (q *frontier) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// --- A* ---

func (pf *Pathfinder) astar(start, goal Cell, occupied map[Cell]bool) Path {
	gScore := map[Cell]int{start: 0}
	cameFrom := map[Cell]Cell{}
	closed := map[Cell]bool{}

	seq := 0
	open := &frontier{{cell: start, g: 0, f: manhattan(start, goal), seq: seq}}
	heap.Init(open)

	nbuf := make([]Cell, 0, 4)
	for open.Len() > 0 {
		cur := heap.Pop(open).(frontierItem)
		if cur.cell == goal {
			return walkBack(start, goal, func(c Cell) (Cell, bool) {
				p, ok := cameFrom[c]
				return p, ok
			})
		}
		if closed[cur.cell] {
			continue
		}
		closed[cur.cell] = true

		for _, n := range pf.Board.neighbors(cur.cell, nbuf) {
			if closed[n] || !passable(n, goal, occupied) {
				continue
			}
			g := cur.g + 1
			if old, ok := gScore[n]; ok && g >= old {
				continue
			}
			gScore[n] = g
			cameFrom[n] = cur.cell
			seq++
			heap.Push(open, frontierItem{cell: n, g: g, f: g + manhattan(n, goal), seq: seq})
		}
	}
	return nil
}

// --- uniform cost over dense matrices ---

func (pf *Pathfinder) uniform(start, goal Cell, occupied map[Cell]bool) Path {
	b := pf.Board
	const unreached = -1
	dist := make([]int, b.Cells())
	prev := make([]int, b.Cells())
	visited := make([]bool, b.Cells())
	for i := range dist {
		dist[i] = unreached
		prev[i] = unreached
	}
	dist[b.index(start)] = 0

	seq := 0
	open := &frontier{{cell: start, seq: seq}}
	heap.Init(open)

	nbuf := make([]Cell, 0, 4)
	for open.Len() > 0 {
		cur := heap.Pop(open).(frontierItem)
		ci := b.index(cur.cell)
		if visited[ci] {
			continue
		}
		visited[ci] = true
		if cur.cell == goal {
			break
		}
		for _, n := range b.neighbors(cur.cell, nbuf) {
			ni := b.index(n)
			if visited[ni] || !passable(n, goal, occupied) {
				continue
			}
			d := dist[ci] + 1
			if dist[ni] != unreached && d >= dist[ni] {
				continue
			}
			dist[ni] = d
			prev[ni] = ci
			seq++
			heap.Push(open, frontierItem{cell: n, g: d, f: d, seq: seq})
		}
	}
	if !visited[b.index(goal)] {
		return nil
	}
	return walkBack(start, goal, func(c Cell) (Cell, bool) {
		p := prev[b.index(c)]
		if p == unreached {
			return Cell{}, false
		}
		return b.cellAt(p), true
	})
}

func walkBack(start, goal Cell, parent func(Cell) (Cell, bool)) Path {
	path := Path{goal}
	for cur := goal; cur != start; {
		p, ok := parent(cur)
		if !ok {
			return nil
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
