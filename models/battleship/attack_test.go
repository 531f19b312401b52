package battleship

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func singleShipBoard(t *testing.T) (Grid, Fleet) {
	t.Helper()

	fleet := NewFleet([]ShipSpec{{Name: "Cruiser", Width: 1, Length: 3}})
	grid := NewGrid(8)
	grid = Place(grid, 2, 2, 1, 3, OrientationHorizontal, fleet[0].Id)
	return grid, fleet
}

func TestResolveAttackHit(t *testing.T) {
	grid, fleet := singleShipBoard(t)

	newGrid, newFleet, result := ResolveAttack(grid, fleet, 2, 3)

	require.Equal(t, AttackOutcomeHit, result.Outcome)
	require.Equal(t, fleet[0].Id, result.ShipId)
	require.False(t, result.Sunk)
	require.False(t, result.FleetSunk)
	require.Equal(t, PositionStateHit, newGrid[2][3].State)
	require.Equal(t, 1, newFleet[0].Hits())
}

func TestResolveAttackMiss(t *testing.T) {
	grid, fleet := singleShipBoard(t)

	newGrid, newFleet, result := ResolveAttack(grid, fleet, 0, 0)

	require.Equal(t, AttackOutcomeMiss, result.Outcome)
	require.Equal(t, NoShip, result.ShipId)
	require.Equal(t, PositionStateMiss, newGrid[0][0].State)
	require.Equal(t, 0, newFleet[0].Hits())
}

func TestResolveAttackDoesNotMutateInputs(t *testing.T) {
	grid, fleet := singleShipBoard(t)

	_, _, _ = ResolveAttack(grid, fleet, 2, 3)

	require.Equal(t, PositionStateShip, grid[2][3].State)
	require.Equal(t, 0, fleet[0].Hits())
}

func TestResolveAttackIdempotentSafe(t *testing.T) {
	grid, fleet := singleShipBoard(t)

	grid1, fleet1, first := ResolveAttack(grid, fleet, 2, 2)
	require.Equal(t, AttackOutcomeHit, first.Outcome)

	grid2, fleet2, second := ResolveAttack(grid1, fleet1, 2, 2)
	require.Equal(t, AttackOutcomeRejected, second.Outcome)

	// The rejected call changed nothing: a hit stays a hit and the
	// ship counter does not move.
	require.Equal(t, PositionStateHit, grid2[2][2].State)
	require.Equal(t, 1, fleet2[0].Hits())

	// A resolved miss is just as terminal.
	grid3, fleet3, miss := ResolveAttack(grid2, fleet2, 0, 0)
	require.Equal(t, AttackOutcomeMiss, miss.Outcome)
	_, _, again := ResolveAttack(grid3, fleet3, 0, 0)
	require.Equal(t, AttackOutcomeRejected, again.Outcome)
	require.Equal(t, PositionStateMiss, grid3[0][0].State)
}

func TestResolveAttackRejectsOutOfBounds(t *testing.T) {
	grid, fleet := singleShipBoard(t)

	_, _, result := ResolveAttack(grid, fleet, -1, 0)
	require.Equal(t, AttackOutcomeRejected, result.Outcome)

	_, _, result = ResolveAttack(grid, fleet, 0, 8)
	require.Equal(t, AttackOutcomeRejected, result.Outcome)
}

func TestShipSunkExactlyAtFullHits(t *testing.T) {
	grid, fleet := singleShipBoard(t)

	grid, fleet, result := ResolveAttack(grid, fleet, 2, 2)
	require.False(t, result.Sunk)
	grid, fleet, result = ResolveAttack(grid, fleet, 2, 3)
	require.False(t, result.Sunk)
	require.False(t, fleet[0].IsSunk())

	grid, fleet, result = ResolveAttack(grid, fleet, 2, 4)
	require.True(t, result.Sunk)
	require.True(t, result.FleetSunk)
	require.True(t, fleet[0].IsSunk())
	require.Equal(t, fleet[0].Size(), fleet[0].Hits())

	// Re-shooting a sunk ship's cells never pushes hits past size.
	_, fleet, result = ResolveAttack(grid, fleet, 2, 4)
	require.Equal(t, AttackOutcomeRejected, result.Outcome)
	require.Equal(t, fleet[0].Size(), fleet[0].Hits())
}

func TestFleetSunkOnlyWhenEveryShipIsDown(t *testing.T) {
	fleet := NewFleet([]ShipSpec{
		{Name: "Destroyer", Width: 1, Length: 2},
		{Name: "Submarine", Width: 1, Length: 2},
	})
	grid := NewGrid(8)
	grid = Place(grid, 0, 0, 1, 2, OrientationHorizontal, fleet[0].Id)
	grid = Place(grid, 4, 4, 1, 2, OrientationHorizontal, fleet[1].Id)

	grid, fleet, result := ResolveAttack(grid, fleet, 0, 0)
	require.False(t, result.FleetSunk)
	grid, fleet, result = ResolveAttack(grid, fleet, 0, 1)
	require.True(t, result.Sunk)
	require.False(t, result.FleetSunk)

	grid, fleet, result = ResolveAttack(grid, fleet, 4, 4)
	require.False(t, result.FleetSunk)
	_, fleet, result = ResolveAttack(grid, fleet, 4, 5)
	require.True(t, result.Sunk)
	require.True(t, result.FleetSunk)
	require.True(t, fleet.AllSunk())
}
