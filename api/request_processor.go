package api

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/sqlc-dev/pqtype"

	"seastrike/db/query"
	mb "seastrike/models/battleship"
	mc "seastrike/models/connection"
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	q              query.Querier
	defaultCfg     mb.GameConfig
	ipnet          net.IPNet
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	q query.Querier,
	defaultCfg mb.GameConfig,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		q:              q,
		defaultCfg:     defaultCfg,
	}

	rp = rp.mustGetServerIpNet()
	return rp
}

func (rp RequestProcessor) mustGetServerIpNet() RequestProcessor {
	ifaces, err := net.Interfaces()
	if err != nil {
		panic(err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			panic(err)
		}

		for _, addr := range addrs {
			var ipnet *net.IPNet
			var ip net.IP

			switch v := addr.(type) {
			case *net.IPNet:
				ipnet = v
				ip = v.IP

			case *net.IPAddr:
				ip = v.IP
			}

			if ip != nil && ip.To4() != nil && !ip.IsLoopback() && ipnet != nil {
				rp.ipnet = *ipnet
				return rp
			}
		}
	}

	// Containers and CI runners may only expose loopback.
	rp.ipnet = net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}
	return rp
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	log.Println("a new connection established\tRemote Addr:", conn.RemoteAddr().String())
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	defer func() {
		if game := session.Game(); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(session.Id())
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

	serverPqtypeInet := pqtype.Inet{IPNet: rp.ipnet, Valid: true}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch signal.Code {

		case mc.CodeCreateGame:
			ctx, cancel := context.WithTimeout(context.Background(), query.QuerierCtxTimeout)
			if err := rp.q.IncrementMatchesStartedCount(ctx, serverPqtypeInet); err != nil {
				// for now not killing the game for it
				log.Println(err)
			}
			cancel()

			respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager, session, rp.defaultCfg)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodePlacementPreview:
			respMsg := NewRequest(payload).HandlePlacementPreview(session)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodePlaceShip:
			respMsg := NewRequest(payload).HandlePlaceShip(session)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeAttack:
			respMsg := NewRequest(payload).HandleAttack(session)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if game := session.Game(); game != nil && game.Phase() == mb.PhaseGameOver {
				rp.recordMatchResult(serverPqtypeInet, game)

				respEnd := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
				respEnd.AddPayload(mc.RespEndGame{Winner: game.Winner().String()})
				if err := rp.sessionManager.WriteToSessionConn(session, respEnd, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeGameState:
			respMsg := NewRequest(payload).HandleGameState(session)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeRestart:
			respMsg := NewRequest(payload).HandleRestart(session)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp *RequestProcessor) recordMatchResult(serverIpNet pqtype.Inet, game *mb.Game) {
	ctx, cancel := context.WithTimeout(context.Background(), query.QuerierCtxTimeout)
	defer cancel()

	err := rp.q.RecordMatchResult(ctx, query.RecordMatchResultParams{
		ServerIp:    serverIpNet,
		Winner:      game.Winner().String(),
		PlayerShots: int32(game.ShotsFired(mb.SidePlayer)),
		BotShots:    int32(game.ShotsFired(mb.SideBot)),
		DurationSec: int32(time.Since(game.StartedAt()).Seconds()),
	})
	if err != nil {
		log.Println(err)
	}
}
