package battleship

import (
	"fmt"
	"sync"
	"time"

	cerr "seastrike/internal/error"
)

type Phase uint8

const (
	PhasePlacement Phase = iota
	PhaseBattle
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlacement:
		return "placement"
	case PhaseBattle:
		return "battle"
	default:
		return "game-over"
	}
}

type Side uint8

const (
	SideNone Side = iota
	SidePlayer
	SideBot
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideBot:
		return "bot"
	default:
		return "none"
	}
}

// TargetSelector decides the bot's next shot and is fed the result
// of every shot it takes. Implementations only ever pick cells that
// are not yet hit or miss.
type TargetSelector interface {
	PickTarget(grid Grid) (Coordinates, bool)
	NoteHit(grid Grid, target Coordinates, shipId int, sunk bool)
	NoteMiss(target Coordinates)
	Reset()
}

type GameConfig struct {
	GridSize int
	Roster   []ShipSpec

	// Cosmetic pause between a shot being accepted and its
	// resolution, so a client can play an impact animation. Zero
	// resolves everything synchronously.
	ResolveDelay time.Duration
}

func DefaultGameConfig() GameConfig {
	return GameConfig{GridSize: DefaultGridSize, Roster: DefaultRoster}
}

// ShipStatus is the per-ship fleet view handed to clients.
type ShipStatus struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	Size int    `json:"size"`
	Hits int    `json:"hits"`
	Sunk bool   `json:"sunk"`
}

// Game sequences one match of a human player against the bot. All
// turn ownership and in-flight bookkeeping lives here and is only
// transitioned through the methods below, never toggled ad hoc.
type Game struct {
	mu sync.Mutex

	uuid     string
	cfg      GameConfig
	selector TargetSelector

	phase    Phase
	turn     Side
	winner   Side
	inFlight bool

	// Index into the player fleet of the next ship to place.
	nextShip int

	playerGrid  Grid
	botGrid     Grid
	playerFleet Fleet
	botFleet    Fleet

	lastMessage   string
	shotsByPlayer int
	shotsByBot    int
	botShotLog    []ShotRecord
	startedAt     time.Time
}

// ShotRecord is one resolved shot, kept so clients can replay the
// bot's chained shots of a turn.
type ShotRecord struct {
	Side    Side
	Row     int
	Col     int
	Outcome AttackOutcome
	ShipId  int
	Sunk    bool
}

func NewGame(gameUuid string, cfg GameConfig, selector TargetSelector) (*Game, error) {
	if len(cfg.Roster) == 0 {
		return nil, cerr.ErrEmptyShipRoster()
	}
	if cfg.GridSize < 1 {
		return nil, cerr.ErrInvalidGridSize(cfg.GridSize)
	}
	for _, spec := range cfg.Roster {
		if spec.Width < 1 || spec.Length < 1 || spec.Width > spec.Length {
			return nil, cerr.ErrInvalidShipSpec(spec.Name, spec.Width, spec.Length)
		}
		if spec.Length > cfg.GridSize {
			return nil, cerr.ErrInvalidGridSize(cfg.GridSize)
		}
	}

	game := &Game{
		uuid:     gameUuid,
		cfg:      cfg,
		selector: selector,
	}
	game.resetLocked()
	return game, nil
}

// Reset returns the match to a fresh placement phase with new grids
// and fleets.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}

func (g *Game) resetLocked() {
	g.phase = PhasePlacement
	g.turn = SideNone
	g.winner = SideNone
	g.inFlight = false
	g.nextShip = 0
	g.playerGrid = NewGrid(g.cfg.GridSize)
	g.botGrid = NewGrid(g.cfg.GridSize)
	g.playerFleet = NewFleet(g.cfg.Roster)
	g.botFleet = NewFleet(g.cfg.Roster)
	g.lastMessage = "place your fleet"
	g.shotsByPlayer = 0
	g.shotsByBot = 0
	g.botShotLog = nil
	g.startedAt = time.Now()
	if g.selector != nil {
		g.selector.Reset()
	}
}

// AttemptPlacement commits the next unplaced roster ship at
// (row, col). Once the last ship lands, the bot fleet is scattered
// and battle begins with the player holding the turn.
func (g *Game) AttemptPlacement(row, col int, orientation Orientation) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlacement {
		return cerr.ErrWrongPhase(PhasePlacement.String(), g.phase.String())
	}
	if g.nextShip >= len(g.playerFleet) {
		return cerr.ErrFleetAlreadyPlaced()
	}

	sh := g.playerFleet[g.nextShip]
	if !CanPlace(g.playerGrid, row, col, sh.Width, sh.Length, orientation) {
		return cerr.ErrInvalidPlacement(row, col)
	}

	g.playerGrid = Place(g.playerGrid, row, col, sh.Width, sh.Length, orientation, sh.Id)
	g.nextShip++
	g.lastMessage = fmt.Sprintf("%s placed at (%d, %d) %s", sh.Name, row, col, orientation)

	if g.nextShip == len(g.playerFleet) {
		return g.startBattleLocked()
	}
	return nil
}

// CanPlaceNext reports whether the next unplaced ship would fit at
// (row, col). Placement preview only, no side effects.
func (g *Game) CanPlaceNext(row, col int, orientation Orientation) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlacement || g.nextShip >= len(g.playerFleet) {
		return false
	}
	sh := g.playerFleet[g.nextShip]
	return CanPlace(g.playerGrid, row, col, sh.Width, sh.Length, orientation)
}

func (g *Game) startBattleLocked() error {
	botGrid, err := AutoPlace(g.cfg.GridSize, g.botFleet)
	if err != nil {
		return err
	}
	g.botGrid = botGrid
	g.phase = PhaseBattle
	g.turn = SidePlayer
	g.lastMessage = "battle stations, you fire first"
	return nil
}

// AttemptAttack fires the player's shot at the bot grid. Shots in
// the wrong phase, out of turn, at a resolved cell, or while another
// shot is still in flight are rejected without touching any state;
// client races are expected and absorbed.
//
// With a zero ResolveDelay the shot resolves synchronously and the
// returned result is final. With a positive delay the shot is only
// accepted here and resolves against the then-current state after
// the delay; callers observe the outcome through the query methods.
func (g *Game) AttemptAttack(row, col int) (AttackResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rejected := AttackResult{Outcome: AttackOutcomeRejected}

	if g.phase != PhaseBattle {
		return rejected, cerr.ErrWrongPhase(PhaseBattle.String(), g.phase.String())
	}
	if g.turn != SidePlayer {
		return rejected, cerr.ErrNotYourTurn()
	}
	if g.inFlight {
		return rejected, cerr.ErrAttackInFlight()
	}
	if !g.botGrid.InBounds(row, col) {
		return rejected, cerr.ErrRowOrColOutOfGridBound(row, col)
	}
	if g.botGrid.IsResolved(row, col) {
		return rejected, cerr.ErrPositionAlreadyResolved(row, col)
	}

	g.inFlight = true

	if g.cfg.ResolveDelay == 0 {
		return g.finishPlayerShotLocked(row, col), nil
	}

	time.AfterFunc(g.cfg.ResolveDelay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.phase != PhaseBattle || g.turn != SidePlayer {
			g.inFlight = false
			return
		}
		g.finishPlayerShotLocked(row, col)
	})
	return AttackResult{}, nil
}

// finishPlayerShotLocked resolves a previously accepted player shot.
// It reads the grids and fleets at resolution time, never values
// captured when the shot was accepted.
func (g *Game) finishPlayerShotLocked(row, col int) AttackResult {
	newGrid, newFleet, result := ResolveAttack(g.botGrid, g.botFleet, row, col)

	if result.Outcome == AttackOutcomeRejected {
		g.inFlight = false
		return result
	}

	g.botGrid = newGrid
	g.botFleet = newFleet
	g.shotsByPlayer++
	g.lastMessage = g.describeShot(SidePlayer, row, col, result)

	switch {
	case result.FleetSunk:
		g.finishGameLocked(SidePlayer)
	case result.Outcome == AttackOutcomeHit:
		// A hit grants another shot; the turn stays with the player.
		g.inFlight = false
	default:
		g.turn = SideBot
		g.startBotTurnLocked()
	}
	return result
}

// startBotTurnLocked drives the bot's turn. The bot keeps firing
// while it hits, exactly mirroring the player's turn bonus. The
// in-flight flag stays raised until the whole chain completes.
func (g *Game) startBotTurnLocked() {
	if g.cfg.ResolveDelay == 0 {
		for g.botStepLocked() {
		}
		g.inFlight = false
		return
	}
	g.scheduleBotStep()
}

func (g *Game) scheduleBotStep() {
	time.AfterFunc(g.cfg.ResolveDelay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.phase != PhaseBattle || g.turn != SideBot {
			g.inFlight = false
			return
		}
		if g.botStepLocked() {
			g.scheduleBotStep()
			return
		}
		g.inFlight = false
	})
}

// botStepLocked fires exactly one bot shot and reports whether the
// bot keeps the turn.
func (g *Game) botStepLocked() bool {
	target, ok := g.selector.PickTarget(g.playerGrid)
	if !ok {
		g.turn = SidePlayer
		return false
	}

	newGrid, newFleet, result := ResolveAttack(g.playerGrid, g.playerFleet, target.Row, target.Col)
	if result.Outcome == AttackOutcomeRejected {
		// Selectors never pick resolved cells; yield the turn rather
		// than loop on a misbehaving one.
		g.turn = SidePlayer
		return false
	}

	g.playerGrid = newGrid
	g.playerFleet = newFleet
	g.shotsByBot++
	g.botShotLog = append(g.botShotLog, ShotRecord{
		Side:    SideBot,
		Row:     target.Row,
		Col:     target.Col,
		Outcome: result.Outcome,
		ShipId:  result.ShipId,
		Sunk:    result.Sunk,
	})
	g.lastMessage = g.describeShot(SideBot, target.Row, target.Col, result)

	switch {
	case result.FleetSunk:
		g.finishGameLocked(SideBot)
		return false
	case result.Outcome == AttackOutcomeHit:
		g.selector.NoteHit(g.playerGrid, target, result.ShipId, result.Sunk)
		return true
	default:
		g.selector.NoteMiss(target)
		g.turn = SidePlayer
		return false
	}
}

func (g *Game) finishGameLocked(winner Side) {
	g.phase = PhaseGameOver
	g.turn = SideNone
	g.winner = winner
	g.inFlight = false
	if winner == SidePlayer {
		g.lastMessage = "enemy fleet destroyed, you win"
	} else {
		g.lastMessage = "your fleet is destroyed, you lose"
	}
}

func (g *Game) describeShot(side Side, row, col int, result AttackResult) string {
	switch {
	case result.Sunk:
		var name string
		fleet := g.botFleet
		if side == SideBot {
			fleet = g.playerFleet
		}
		if sh := fleet.ShipById(result.ShipId); sh != nil {
			name = sh.Name
		}
		return fmt.Sprintf("%s sunk %s at (%d, %d)", side, name, row, col)
	case result.Outcome == AttackOutcomeHit:
		return fmt.Sprintf("%s hit at (%d, %d)", side, row, col)
	default:
		return fmt.Sprintf("%s missed at (%d, %d)", side, row, col)
	}
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Config() GameConfig {
	return g.cfg
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) Turn() Side {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

func (g *Game) Winner() Side {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

func (g *Game) LastMessage() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastMessage
}

// NextShipToPlace returns the ShipSpec the player places
// next, or false once the fleet is complete.
func (g *Game) NextShipToPlace() (ShipSpec, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.nextShip >= len(g.cfg.Roster) {
		return ShipSpec{}, false
	}
	return g.cfg.Roster[g.nextShip], true
}

func (g *Game) PlayerGrid() Grid {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerGrid.Copy()
}

// BotGrid exposes the bot's board with unhit ships hidden. The true
// occupancy never leaves the rules core before game over.
func (g *Game) BotGrid() Grid {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhaseGameOver {
		return g.botGrid.Copy()
	}
	return g.botGrid.Masked()
}

// PlayerPlacements derives the start cell and orientation of every
// placed player ship, in fleet order. Rendering aid only; unplaced
// ships are skipped.
func (g *Game) PlayerPlacements() []Placement {
	g.mu.Lock()
	defer g.mu.Unlock()

	placements := make([]Placement, 0, len(g.playerFleet))
	for _, sh := range g.playerFleet {
		if placement, ok := DerivePlacement(g.playerGrid, sh.Id); ok {
			placements = append(placements, placement)
		}
	}
	return placements
}

func (g *Game) PlayerFleetStatus() []ShipStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fleetStatus(g.playerFleet)
}

func (g *Game) BotFleetStatus() []ShipStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fleetStatus(g.botFleet)
}

func fleetStatus(fleet Fleet) []ShipStatus {
	status := make([]ShipStatus, 0, len(fleet))
	for _, sh := range fleet {
		status = append(status, ShipStatus{
			Id:   sh.Id,
			Name: sh.Name,
			Size: sh.Size(),
			Hits: sh.Hits(),
			Sunk: sh.IsSunk(),
		})
	}
	return status
}

// BotShotsSince returns the bot shots resolved after the first n,
// in firing order.
func (g *Game) BotShotsSince(n int) []ShotRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	if n < 0 || n >= len(g.botShotLog) {
		return nil
	}
	shots := make([]ShotRecord, len(g.botShotLog)-n)
	copy(shots, g.botShotLog[n:])
	return shots
}

// ShotsFired reports how many resolved shots a side has taken.
func (g *Game) ShotsFired(side Side) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if side == SidePlayer {
		return g.shotsByPlayer
	}
	return g.shotsByBot
}

func (g *Game) StartedAt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.startedAt
}
