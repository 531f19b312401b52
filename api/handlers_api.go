package api

import (
	"encoding/json"

	cerr "seastrike/internal/error"
	mb "seastrike/models/battleship"
	mc "seastrike/models/connection"
)

type RequestHandler interface {
	HandleCreateGame(gameManager mb.GameManager, session *mc.Session, defaultCfg mb.GameConfig) mc.Message[mc.RespCreateGame]
	HandlePlaceShip(session *mc.Session) mc.Message[mc.RespPlaceShip]
	HandlePlacementPreview(session *mc.Session) mc.Message[mc.RespPlacementPreview]
	HandleAttack(session *mc.Session) mc.Message[mc.RespAttack]
	HandleGameState(session *mc.Session) mc.Message[mc.RespGameState]
	HandleRestart(session *mc.Session) mc.Message[mc.RespGameState]
}

// Every incoming valid request is handled through this structure
// in line with the RequestHandler interface.
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload []byte) *Request {
	return &Request{payload: payload}
}

// HandleCreateGame starts a fresh match for this session. Grid size
// and roster come from the request when given; rule parameters are
// never hard-coded server side.
func (r *Request) HandleCreateGame(gameManager mb.GameManager, session *mc.Session, defaultCfg mb.GameConfig) mc.Message[mc.RespCreateGame] {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	var req mc.Message[mc.ReqCreateGame]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "failed to create game")
		return resp
	}

	cfg := defaultCfg
	if req.Payload.GridSize > 0 {
		cfg.GridSize = req.Payload.GridSize
	}
	if len(req.Payload.Roster) > 0 {
		cfg.Roster = req.Payload.Roster
	}

	game, err := gameManager.CreateGame(cfg)
	if err != nil {
		resp.AddError(err.Error(), "failed to create game")
		return resp
	}

	// A session plays one game at a time; a new one abandons the old.
	if old := session.Game(); old != nil {
		gameManager.TerminateGame(old.Uuid())
	}
	session.SetGame(game)

	resp.AddPayload(mc.RespCreateGame{
		GameUuid: game.Uuid(),
		GridSize: cfg.GridSize,
		Roster:   cfg.Roster,
	})
	return resp
}

func (r *Request) HandlePlaceShip(session *mc.Session) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)

	game, err := sessionGame(session)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	var req mc.Message[mc.ReqPlaceShip]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	if err := game.AttemptPlacement(req.Payload.Row, req.Payload.Col, mb.Orientation(req.Payload.Orientation)); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	payload := mc.RespPlaceShip{
		Phase:   game.Phase().String(),
		Message: game.LastMessage(),
	}
	if next, ok := game.NextShipToPlace(); ok {
		payload.NextShip = &next
	}
	resp.AddPayload(payload)
	return resp
}

// HandlePlacementPreview probes whether the next roster ship fits at
// the requested cell, for client-side placement highlighting. It
// never commits anything.
func (r *Request) HandlePlacementPreview(session *mc.Session) mc.Message[mc.RespPlacementPreview] {
	resp := mc.NewMessage[mc.RespPlacementPreview](mc.CodePlacementPreview)

	game, err := sessionGame(session)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	var req mc.Message[mc.ReqPlacementPreview]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	resp.AddPayload(mc.RespPlacementPreview{
		Row:      req.Payload.Row,
		Col:      req.Payload.Col,
		CanPlace: game.CanPlaceNext(req.Payload.Row, req.Payload.Col, mb.Orientation(req.Payload.Orientation)),
	})
	return resp
}

func (r *Request) HandleAttack(session *mc.Session) mc.Message[mc.RespAttack] {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)

	game, err := sessionGame(session)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	var req mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	botShotsBefore := game.ShotsFired(mb.SideBot)

	result, err := game.AttemptAttack(req.Payload.Row, req.Payload.Col)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	payload := mc.RespAttack{
		PlayerShot: mc.ShotReport{
			Row:     req.Payload.Row,
			Col:     req.Payload.Col,
			Outcome: result.Outcome.String(),
			ShipId:  result.ShipId,
			Sunk:    result.Sunk,
		},
		BotShots:    shotReports(game.BotShotsSince(botShotsBefore)),
		Phase:       game.Phase().String(),
		Turn:        game.Turn().String(),
		PlayerFleet: game.PlayerFleetStatus(),
		BotFleet:    game.BotFleetStatus(),
		Message:     game.LastMessage(),
	}
	if winner := game.Winner(); winner != mb.SideNone {
		payload.Winner = winner.String()
	}
	resp.AddPayload(payload)
	return resp
}

func (r *Request) HandleGameState(session *mc.Session) mc.Message[mc.RespGameState] {
	resp := mc.NewMessage[mc.RespGameState](mc.CodeGameState)

	game, err := sessionGame(session)
	if err != nil {
		resp.AddError(err.Error(), "failed to fetch game state")
		return resp
	}

	resp.AddPayload(gameStateResp(game))
	return resp
}

func (r *Request) HandleRestart(session *mc.Session) mc.Message[mc.RespGameState] {
	resp := mc.NewMessage[mc.RespGameState](mc.CodeRestart)

	game, err := sessionGame(session)
	if err != nil {
		resp.AddError(err.Error(), "failed to restart game")
		return resp
	}

	game.Reset()
	resp.AddPayload(gameStateResp(game))
	return resp
}

func shotReports(records []mb.ShotRecord) []mc.ShotReport {
	reports := make([]mc.ShotReport, 0, len(records))
	for _, rec := range records {
		reports = append(reports, mc.ShotReport{
			Row:     rec.Row,
			Col:     rec.Col,
			Outcome: rec.Outcome.String(),
			ShipId:  rec.ShipId,
			Sunk:    rec.Sunk,
		})
	}
	return reports
}

func sessionGame(session *mc.Session) (*mb.Game, error) {
	game := session.Game()
	if game == nil {
		return nil, cerr.ErrGameNotExists("")
	}
	return game, nil
}

func gameStateResp(game *mb.Game) mc.RespGameState {
	state := mc.RespGameState{
		Phase:       game.Phase().String(),
		Turn:        game.Turn().String(),
		PlayerGrid:  game.PlayerGrid(),
		BotGrid:     game.BotGrid(),
		PlayerFleet: game.PlayerFleetStatus(),
		BotFleet:    game.BotFleetStatus(),

		PlayerPlacements: game.PlayerPlacements(),

		Message: game.LastMessage(),
	}
	if winner := game.Winner(); winner != mb.SideNone {
		state.Winner = winner.String()
	}
	return state
}
