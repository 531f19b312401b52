package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	mb "seastrike/models/battleship"
	mc "seastrike/models/connection"
)

// The tests in this file run in order against the single connection
// opened in TestMain, walking one match from creation to game over.

var testGameUuid string

func TestSessionIdReceived(t *testing.T) {
	require.NotEmpty(t, sessionID)
}

func TestCreateGame(t *testing.T) {
	req := mc.NewMessage[mc.ReqCreateGame](mc.CodeCreateGame)
	req.AddPayload(mc.ReqCreateGame{
		GridSize: 4,
		Roster:   []mb.ShipSpec{{Name: "Destroyer", Width: 1, Length: 2}},
	})
	require.NoError(t, clientConn.WriteJSON(req))

	var resp mc.Message[mc.RespCreateGame]
	require.NoError(t, clientConn.ReadJSON(&resp))
	require.Equal(t, mc.CodeCreateGame, resp.Code)
	require.Nil(t, resp.Error)
	require.NotEmpty(t, resp.Payload.GameUuid)
	require.Equal(t, 4, resp.Payload.GridSize)
	require.Len(t, resp.Payload.Roster, 1)

	testGameUuid = resp.Payload.GameUuid
}

func TestPlaceShipOutOfBoundsRejected(t *testing.T) {
	req := mc.NewMessage[mc.ReqPlaceShip](mc.CodePlaceShip)
	req.AddPayload(mc.ReqPlaceShip{GameUuid: testGameUuid, Row: 100, Col: 0})
	require.NoError(t, clientConn.WriteJSON(req))

	var resp mc.Message[mc.RespPlaceShip]
	require.NoError(t, clientConn.ReadJSON(&resp))
	require.Equal(t, mc.CodePlaceShip, resp.Code)
	require.NotNil(t, resp.Error)
}

func TestPlacementPreview(t *testing.T) {
	preview := func(row, col int) mc.Message[mc.RespPlacementPreview] {
		req := mc.NewMessage[mc.ReqPlacementPreview](mc.CodePlacementPreview)
		req.AddPayload(mc.ReqPlacementPreview{GameUuid: testGameUuid, Row: row, Col: col})
		require.NoError(t, clientConn.WriteJSON(req))

		var resp mc.Message[mc.RespPlacementPreview]
		require.NoError(t, clientConn.ReadJSON(&resp))
		require.Equal(t, mc.CodePlacementPreview, resp.Code)
		require.Nil(t, resp.Error)
		return resp
	}

	// The 1x2 destroyer fits at the origin but not hanging off the
	// board edge; neither probe commits anything.
	require.True(t, preview(0, 0).Payload.CanPlace)
	require.False(t, preview(0, 3).Payload.CanPlace)
}

func TestPlaceShipStartsBattle(t *testing.T) {
	req := mc.NewMessage[mc.ReqPlaceShip](mc.CodePlaceShip)
	req.AddPayload(mc.ReqPlaceShip{GameUuid: testGameUuid, Row: 0, Col: 0})
	require.NoError(t, clientConn.WriteJSON(req))

	var resp mc.Message[mc.RespPlaceShip]
	require.NoError(t, clientConn.ReadJSON(&resp))
	require.Equal(t, mc.CodePlaceShip, resp.Code)
	require.Nil(t, resp.Error)

	// A one-ship roster goes straight to battle.
	require.Equal(t, "battle", resp.Payload.Phase)
	require.Nil(t, resp.Payload.NextShip)
}

func TestGameStateMasksBotShips(t *testing.T) {
	req := mc.NewMessage[mc.ReqGameState](mc.CodeGameState)
	req.AddPayload(mc.ReqGameState{GameUuid: testGameUuid})
	require.NoError(t, clientConn.WriteJSON(req))

	var resp mc.Message[mc.RespGameState]
	require.NoError(t, clientConn.ReadJSON(&resp))
	require.Equal(t, mc.CodeGameState, resp.Code)
	require.Nil(t, resp.Error)
	require.Equal(t, "battle", resp.Payload.Phase)
	require.Equal(t, "player", resp.Payload.Turn)

	for _, row := range resp.Payload.BotGrid {
		for _, cell := range row {
			require.NotEqual(t, mb.PositionStateShip, cell.State)
			require.Equal(t, mb.NoShip, cell.ShipId)
		}
	}

	// The player's own placement comes back as a derived view.
	require.Len(t, resp.Payload.PlayerPlacements, 1)
	require.Equal(t, 0, resp.Payload.PlayerPlacements[0].StartRow)
	require.Equal(t, 0, resp.Payload.PlayerPlacements[0].StartCol)
}

func TestAttackSweepEndsGame(t *testing.T) {
	gameOver := false

sweep:
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			req := mc.NewMessage[mc.ReqAttack](mc.CodeAttack)
			req.AddPayload(mc.ReqAttack{GameUuid: testGameUuid, Row: row, Col: col})
			require.NoError(t, clientConn.WriteJSON(req))

			var resp mc.Message[mc.RespAttack]
			require.NoError(t, clientConn.ReadJSON(&resp))
			require.Equal(t, mc.CodeAttack, resp.Code)
			require.Nil(t, resp.Error)

			switch resp.Payload.Phase {
			case "game-over":
				require.NotEmpty(t, resp.Payload.Winner)

				var respEnd mc.Message[mc.RespEndGame]
				require.NoError(t, clientConn.ReadJSON(&respEnd))
				require.Equal(t, mc.CodeEndGame, respEnd.Code)
				require.Equal(t, resp.Payload.Winner, respEnd.Payload.Winner)

				gameOver = true
				break sweep

			case "battle":
				require.Equal(t, "player", resp.Payload.Turn)

			default:
				t.Fatalf("unexpected phase %q", resp.Payload.Phase)
			}
		}
	}

	// One 1x2 ship per side on a 4x4 board: a full sweep always ends
	// the match one way or the other.
	require.True(t, gameOver)
}

func TestAttackAfterGameOverRejected(t *testing.T) {
	req := mc.NewMessage[mc.ReqAttack](mc.CodeAttack)
	req.AddPayload(mc.ReqAttack{GameUuid: testGameUuid, Row: 3, Col: 3})
	require.NoError(t, clientConn.WriteJSON(req))

	var resp mc.Message[mc.RespAttack]
	require.NoError(t, clientConn.ReadJSON(&resp))
	require.Equal(t, mc.CodeAttack, resp.Code)
	require.NotNil(t, resp.Error)
}

func TestRestartReturnsToPlacement(t *testing.T) {
	req := mc.NewMessage[mc.ReqGameState](mc.CodeRestart)
	req.AddPayload(mc.ReqGameState{GameUuid: testGameUuid})
	require.NoError(t, clientConn.WriteJSON(req))

	var resp mc.Message[mc.RespGameState]
	require.NoError(t, clientConn.ReadJSON(&resp))
	require.Equal(t, mc.CodeRestart, resp.Code)
	require.Nil(t, resp.Error)
	require.Equal(t, "placement", resp.Payload.Phase)
	require.Empty(t, resp.Payload.Winner)
}

func TestInvalidSignalCode(t *testing.T) {
	req := mc.NewMessage[mc.NoPayload](99)
	require.NoError(t, clientConn.WriteJSON(req))

	var resp mc.Message[mc.NoPayload]
	require.NoError(t, clientConn.ReadJSON(&resp))
	require.Equal(t, mc.CodeInvalidSignal, resp.Code)
	require.NotNil(t, resp.Error)
}
