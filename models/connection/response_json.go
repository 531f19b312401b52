package connection

import (
	mb "seastrike/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string        `json:"game_uuid"`
	GridSize int           `json:"grid_size"`
	Roster   []mb.ShipSpec `json:"roster"`
}

type RespPlaceShip struct {
	Phase    string       `json:"phase"`
	NextShip *mb.ShipSpec `json:"next_ship,omitempty"`
	Message  string       `json:"message"`
}

// RespPlacementPreview answers whether the next roster ship fits at
// the probed cell. Pure preview, nothing on the board changes.
type RespPlacementPreview struct {
	Row      int  `json:"row"`
	Col      int  `json:"col"`
	CanPlace bool `json:"can_place"`
}

// ShotReport describes one resolved shot of either side.
type ShotReport struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Outcome string `json:"outcome"`
	ShipId  int    `json:"ship_id,omitempty"`
	Sunk    bool   `json:"sunk,omitempty"`
}

// RespAttack carries the player's shot plus every bot shot the turn
// triggered, so the client can replay the exchange.
type RespAttack struct {
	PlayerShot  ShotReport      `json:"player_shot"`
	BotShots    []ShotReport    `json:"bot_shots,omitempty"`
	Phase       string          `json:"phase"`
	Turn        string          `json:"turn"`
	Winner      string          `json:"winner,omitempty"`
	PlayerFleet []mb.ShipStatus `json:"player_fleet"`
	BotFleet    []mb.ShipStatus `json:"bot_fleet"`
	Message     string          `json:"message"`
}

type RespGameState struct {
	Phase       string          `json:"phase"`
	Turn        string          `json:"turn"`
	Winner      string          `json:"winner,omitempty"`
	PlayerGrid  mb.Grid         `json:"player_grid"`
	BotGrid     mb.Grid         `json:"bot_grid"`
	PlayerFleet []mb.ShipStatus `json:"player_fleet"`
	BotFleet    []mb.ShipStatus `json:"bot_fleet"`

	// Derived start cell and orientation per placed player ship,
	// for rendering. Authoritative state is the grid itself.
	PlayerPlacements []mb.Placement `json:"player_placements,omitempty"`

	Message string `json:"message"`
}

type RespEndGame struct {
	Winner string `json:"winner"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
