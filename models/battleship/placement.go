package battleship

import (
	"math/rand"
	"time"

	cerr "seastrike/internal/error"
)

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) String() string {
	if o == OrientationHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Placement is a derived view of where a ship sits on the grid.
// The authoritative state is the cell occupancy itself.
type Placement struct {
	ShipId      int         `json:"ship_id"`
	StartRow    int         `json:"start_row"`
	StartCol    int         `json:"start_col"`
	Orientation Orientation `json:"orientation"`
}

const (
	maxPlaceAttemptsPerShip = 1000
	maxAutoPlaceRetries     = 20
)

var placementRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// footprintSpan maps a ship's width x length onto row and column
// extents for the given orientation.
func footprintSpan(width, length int, orientation Orientation) (rowSpan, colSpan int) {
	if orientation == OrientationHorizontal {
		return width, length
	}
	return length, width
}

// CanPlace reports whether a ship of the given footprint fits at
// (row, col): fully on the grid, on unoccupied cells, and with no
// other ship within a one-cell border in any of the 8 directions.
// Pure; safe to call repeatedly for placement previews.
func CanPlace(grid Grid, row, col, width, length int, orientation Orientation) bool {
	rowSpan, colSpan := footprintSpan(width, length, orientation)

	if !grid.InBounds(row, col) || !grid.InBounds(row+rowSpan-1, col+colSpan-1) {
		return false
	}

	for r := row; r < row+rowSpan; r++ {
		for c := col; c < col+colSpan; c++ {
			if grid[r][c].State == PositionStateShip {
				return false
			}
		}
	}

	// Ships may never touch, not even diagonally. Scan the footprint
	// expanded by one cell, clipped to the grid.
	for r := max(0, row-1); r <= min(grid.Size()-1, row+rowSpan); r++ {
		for c := max(0, col-1); c <= min(grid.Size()-1, col+colSpan); c++ {
			if grid[r][c].State == PositionStateShip {
				return false
			}
		}
	}

	return true
}

// Place writes the ship footprint into a copy of the grid and
// returns it. The input grid is never mutated, so callers can
// discard attempted placements. Place does not validate; call
// CanPlace first.
func Place(grid Grid, row, col, width, length int, orientation Orientation, shipId int) Grid {
	rowSpan, colSpan := footprintSpan(width, length, orientation)

	placed := grid.Copy()
	for r := row; r < row+rowSpan; r++ {
		for c := col; c < col+colSpan; c++ {
			placed[r][c] = Cell{State: PositionStateShip, ShipId: shipId}
		}
	}
	return placed
}

// DerivePlacement reconstructs a ship's start cell and orientation
// from its occupied cells. The bounding box decides the orientation:
// a wider column span than row span means horizontal. A simple
// "all in one row" check would misclassify ships wider than one cell.
func DerivePlacement(grid Grid, shipId int) (Placement, bool) {
	minRow, minCol := grid.Size(), grid.Size()
	maxRow, maxCol := -1, -1

	for r := 0; r < grid.Size(); r++ {
		for c := 0; c < grid.Size(); c++ {
			if grid[r][c].ShipId != shipId {
				continue
			}
			minRow = min(minRow, r)
			minCol = min(minCol, c)
			maxRow = max(maxRow, r)
			maxCol = max(maxCol, c)
		}
	}

	if maxRow == -1 {
		return Placement{}, false
	}

	orientation := OrientationVertical
	if maxCol-minCol > maxRow-minRow {
		orientation = OrientationHorizontal
	}

	return Placement{
		ShipId:      shipId,
		StartRow:    minRow,
		StartCol:    minCol,
		Orientation: orientation,
	}, true
}

// AutoPlace scatters the whole fleet over a fresh grid with random
// positions and orientations. Placement of a single ship is capped;
// running out of attempts voids the board and the scatter restarts
// from empty, since a partially placed fleet under contention is not
// a valid fleet.
func AutoPlace(size int, fleet Fleet) (Grid, error) {
	for retry := 0; retry < maxAutoPlaceRetries; retry++ {
		grid, ok := tryAutoPlace(size, fleet)
		if ok {
			return grid, nil
		}
	}
	return nil, cerr.ErrAutoPlacementExhausted(maxAutoPlaceRetries * maxPlaceAttemptsPerShip)
}

func tryAutoPlace(size int, fleet Fleet) (Grid, bool) {
	grid := NewGrid(size)

	for _, sh := range fleet {
		placed := false
		for attempt := 0; attempt < maxPlaceAttemptsPerShip; attempt++ {
			row := placementRand.Intn(size)
			col := placementRand.Intn(size)
			orientation := Orientation(placementRand.Intn(2))

			if CanPlace(grid, row, col, sh.Width, sh.Length, orientation) {
				grid = Place(grid, row, col, sh.Width, sh.Length, orientation, sh.Id)
				placed = true
				break
			}
		}
		if !placed {
			return nil, false
		}
	}

	return grid, true
}
