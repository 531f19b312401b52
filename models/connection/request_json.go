package connection

import (
	mb "seastrike/models/battleship"
)

type ReqCreateGame struct {
	// Zero values fall back to the server defaults; board size and
	// roster are product parameters, not rule constants.
	GridSize int           `json:"grid_size,omitempty"`
	Roster   []mb.ShipSpec `json:"roster,omitempty"`
}

type ReqPlaceShip struct {
	GameUuid    string `json:"game_uuid"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Orientation uint8  `json:"orientation"`
}

type ReqPlacementPreview struct {
	GameUuid    string `json:"game_uuid"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Orientation uint8  `json:"orientation"`
}

type ReqAttack struct {
	GameUuid string `json:"game_uuid"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

type ReqGameState struct {
	GameUuid string `json:"game_uuid"`
}
