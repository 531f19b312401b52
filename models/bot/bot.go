package bot

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"seastrike/models/battleship"
)

// lead is a queued candidate cell adjacent to a confirmed hit,
// tagged with the ship that produced it so sinking one ship does
// not throw away leads on another wounded one.
type lead struct {
	target battleship.Coordinates
	shipId int
}

// Bot hunts the player fleet with a hunt/target strategy: random
// probing until a hit lands, then focused probing of the hit's
// neighborhood through a FIFO candidate queue.
type Bot struct {
	targets     []lead
	lastHit     *battleship.Coordinates
	lastHitShip int
	rng         *rand.Rand
	logger      *log.Logger
}

var _ battleship.TargetSelector = (*Bot)(nil)

func New() *Bot {
	return &Bot{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: log.WithPrefix("bot"),
	}
}

// NewWithSeed pins the random source, for deterministic play.
func NewWithSeed(seed int64) *Bot {
	b := New()
	b.rng = rand.New(rand.NewSource(seed))
	return b
}

func (b *Bot) Reset() {
	b.targets = nil
	b.lastHit = nil
	b.lastHitShip = battleship.NoShip
}

// PickTarget chooses the next shot, in priority order: the first
// still-unresolved queued candidate, then a random unresolved
// neighbor of the last confirmed hit, then a random unresolved cell
// anywhere. Returns false only when no unresolved cell is left.
func (b *Bot) PickTarget(grid battleship.Grid) (battleship.Coordinates, bool) {
	for len(b.targets) > 0 {
		var next lead
		next, b.targets = b.targets[0], b.targets[1:]

		// Candidates can go stale: the same cell may have been queued
		// from two adjacent hits, or resolved by an earlier random shot.
		if !grid.IsResolved(next.target.Row, next.target.Col) {
			b.logger.Debug("queued candidate", "row", next.target.Row, "col", next.target.Col)
			return next.target, true
		}
	}

	if b.lastHit != nil {
		neighbors := unresolvedNeighbors(grid, *b.lastHit)
		if len(neighbors) > 0 {
			target := neighbors[b.rng.Intn(len(neighbors))]
			b.logger.Debug("following up last hit", "row", target.Row, "col", target.Col)
			return target, true
		}
		b.lastHit = nil
		b.lastHitShip = battleship.NoShip
	}

	return b.randomTarget(grid)
}

// randomTarget rejection-samples the grid, falling back to a linear
// scan so an almost fully resolved board still terminates.
func (b *Bot) randomTarget(grid battleship.Grid) (battleship.Coordinates, bool) {
	size := grid.Size()
	for attempt := 0; attempt < size*size; attempt++ {
		row := b.rng.Intn(size)
		col := b.rng.Intn(size)
		if !grid.IsResolved(row, col) {
			return battleship.NewCoordinates(row, col), true
		}
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if !grid.IsResolved(row, col) {
				return battleship.NewCoordinates(row, col), true
			}
		}
	}
	return battleship.Coordinates{}, false
}

// NoteHit records a confirmed hit: the hit becomes the new hunt
// anchor and its unresolved orthogonal neighbors are appended to the
// candidate queue. Queued leads from other hits are kept so parallel
// hit-chains interleave without losing candidates. A sink retires
// only the sunk ship's leads.
func (b *Bot) NoteHit(grid battleship.Grid, target battleship.Coordinates, shipId int, sunk bool) {
	if sunk {
		b.logger.Debug("ship sunk", "ship", shipId)
		b.dropLeadsFor(shipId)
		if b.lastHitShip == shipId {
			b.lastHit = nil
			b.lastHitShip = battleship.NoShip
		}
		return
	}

	b.lastHit = &target
	b.lastHitShip = shipId
	for _, neighbor := range unresolvedNeighbors(grid, target) {
		b.targets = append(b.targets, lead{target: neighbor, shipId: shipId})
	}
}

func (b *Bot) NoteMiss(target battleship.Coordinates) {
	b.logger.Debug("miss", "row", target.Row, "col", target.Col)
}

func (b *Bot) dropLeadsFor(shipId int) {
	kept := b.targets[:0]
	for _, l := range b.targets {
		if l.shipId != shipId {
			kept = append(kept, l)
		}
	}
	b.targets = kept
}

func unresolvedNeighbors(grid battleship.Grid, c battleship.Coordinates) []battleship.Coordinates {
	offsets := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	neighbors := make([]battleship.Coordinates, 0, 4)
	for _, off := range offsets {
		row, col := c.Row+off[0], c.Col+off[1]
		if grid.InBounds(row, col) && !grid.IsResolved(row, col) {
			neighbors = append(neighbors, battleship.NewCoordinates(row, col))
		}
	}
	return neighbors
}
