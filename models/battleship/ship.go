package battleship

// ShipSpec describes one ship of a roster. Width <= Length by
// convention; a ship with Width > 1 occupies more than one row
// or column.
type ShipSpec struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Length int    `json:"length"`
}

// Both sides always sail the same roster.
var DefaultRoster = []ShipSpec{
	{Name: "Destroyer", Width: 1, Length: 2},
	{Name: "Submarine", Width: 1, Length: 3},
	{Name: "Cruiser", Width: 1, Length: 3},
	{Name: "Battleship", Width: 1, Length: 4},
	{Name: "Carrier", Width: 2, Length: 5},
}

const DefaultGridSize = 15

type Ship struct {
	Id     int
	Name   string
	Width  int
	Length int

	hits           int
	sunk           bool
	hitCoordinates []Coordinates
}

func NewShip(id int, spec ShipSpec) *Ship {
	return &Ship{
		Id:             id,
		Name:           spec.Name,
		Width:          spec.Width,
		Length:         spec.Length,
		hitCoordinates: make([]Coordinates, 0, spec.Width*spec.Length),
	}
}

// Size is the total cell count of the footprint.
func (sh *Ship) Size() int {
	return sh.Width * sh.Length
}

func (sh *Ship) Hits() int {
	return sh.hits
}

func (sh *Ship) GotHit(c Coordinates) {
	if sh.hits >= sh.Size() {
		return
	}
	sh.hits++
	sh.hitCoordinates = append(sh.hitCoordinates, c)
	if sh.hits == sh.Size() {
		sh.sunk = true
	}
}

func (sh *Ship) IsSunk() bool {
	return sh.sunk
}

func (sh *Ship) GetHitCoordinates() []Coordinates {
	return sh.hitCoordinates
}

func (sh *Ship) copy() *Ship {
	dup := *sh
	dup.hitCoordinates = make([]Coordinates, len(sh.hitCoordinates), cap(sh.hitCoordinates))
	copy(dup.hitCoordinates, sh.hitCoordinates)
	return &dup
}

// Fleet is the ordered ship collection of one side. Ship ids are
// the 1-based roster positions.
type Fleet []*Ship

func NewFleet(roster []ShipSpec) Fleet {
	fleet := make(Fleet, 0, len(roster))
	for i, spec := range roster {
		fleet = append(fleet, NewShip(i+1, spec))
	}
	return fleet
}

func (f Fleet) ShipById(id int) *Ship {
	if id < 1 || id > len(f) {
		return nil
	}
	return f[id-1]
}

func (f Fleet) AllSunk() bool {
	for _, sh := range f {
		if !sh.IsSunk() {
			return false
		}
	}
	return len(f) > 0
}

func (f Fleet) Copy() Fleet {
	fleet := make(Fleet, 0, len(f))
	for _, sh := range f {
		fleet = append(fleet, sh.copy())
	}
	return fleet
}
