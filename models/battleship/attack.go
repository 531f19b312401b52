package battleship

type AttackOutcome uint8

const (
	AttackOutcomeMiss AttackOutcome = iota
	AttackOutcomeHit
	// The target cell was already hit or missed, or the shot was
	// out of bounds. Nothing changed.
	AttackOutcomeRejected
)

func (o AttackOutcome) String() string {
	switch o {
	case AttackOutcomeMiss:
		return "miss"
	case AttackOutcomeHit:
		return "hit"
	default:
		return "rejected"
	}
}

type AttackResult struct {
	Outcome AttackOutcome
	// Id of the ship that took the hit, NoShip on a miss.
	ShipId int
	// The hit finished off the ship.
	Sunk bool
	// Every ship of the defending fleet is sunk; the attacker won.
	FleetSunk bool
}

// ResolveAttack applies one shot at (row, col) to the defending grid
// and fleet, returning mutated copies. A resolved cell is terminal:
// shooting it again is rejected with the inputs returned untouched,
// so a hit can never be downgraded to a miss nor scored twice.
func ResolveAttack(grid Grid, fleet Fleet, row, col int) (Grid, Fleet, AttackResult) {
	if !grid.InBounds(row, col) || grid.IsResolved(row, col) {
		return grid, fleet, AttackResult{Outcome: AttackOutcomeRejected}
	}

	newGrid := grid.Copy()
	newFleet := fleet.Copy()

	if newGrid[row][col].State == PositionStateShip {
		shipId := newGrid[row][col].ShipId
		newGrid[row][col].State = PositionStateHit

		result := AttackResult{Outcome: AttackOutcomeHit, ShipId: shipId}
		if sh := newFleet.ShipById(shipId); sh != nil {
			sh.GotHit(NewCoordinates(row, col))
			result.Sunk = sh.IsSunk()
		}
		result.FleetSunk = newFleet.AllSunk()

		return newGrid, newFleet, result
	}

	newGrid[row][col].State = PositionStateMiss
	return newGrid, newFleet, AttackResult{Outcome: AttackOutcomeMiss, ShipId: NoShip}
}
