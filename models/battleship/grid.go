package battleship

const (
	PositionStateEmpty uint8 = iota
	PositionStateShip
	PositionStateHit
	PositionStateMiss
)

// NoShip marks a cell that does not belong to any ship.
// Valid ship ids start at 1.
const NoShip = 0

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

type Cell struct {
	State  uint8 `json:"state"`
	ShipId int   `json:"ship_id"`
}

type Grid [][]Cell

// Creates a new default grid.
// All cells are PositionStateEmpty with no ship.
func NewGrid(size int) Grid {
	grid := make(Grid, size)
	for i := 0; i < size; i++ {
		grid[i] = make([]Cell, size)
	}
	return grid
}

func (g Grid) Size() int {
	return len(g)
}

func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g) && col >= 0 && col < len(g)
}

// A resolved cell is terminal. It has already absorbed a shot
// and must never be targeted or rewritten again.
func (g Grid) IsResolved(row, col int) bool {
	state := g[row][col].State
	return state == PositionStateHit || state == PositionStateMiss
}

func (g Grid) Copy() Grid {
	grid := make(Grid, len(g))
	for i := range g {
		grid[i] = make([]Cell, len(g[i]))
		copy(grid[i], g[i])
	}
	return grid
}

// Masked returns a view of the grid with unhit ship cells hidden,
// suitable for showing an opponent's board to a client.
func (g Grid) Masked() Grid {
	grid := g.Copy()
	for i := range grid {
		for j := range grid[i] {
			if grid[i][j].State == PositionStateShip {
				grid[i][j] = Cell{State: PositionStateEmpty, ShipId: NoShip}
			}
		}
	}
	return grid
}
