package test

import (
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"seastrike/api"
	"seastrike/db/query"
	mb "seastrike/models/battleship"
	"seastrike/models/bot"
	mc "seastrike/models/connection"
)

const testWsUrl = "ws://127.0.0.1:7272/seastrike"

var (
	clientConn *websocket.Conn
	sessionID  string
	dialer     = websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
)

func TestMain(m *testing.M) {
	go func() {
		sessionManager := mc.NewSeastrikeSessionManager()
		go sessionManager.CleanupPeriodically()

		gameManager := mb.NewSeastrikeGameManager(func() mb.TargetSelector {
			return bot.New()
		})

		server := api.NewServer(sessionManager, gameManager, query.NoopQuerier{},
			api.WithPort(7272),
			api.WithStage(api.StageDev),
		)

		mux := http.NewServeMux()
		// Go 1.21 ServeMux has no method-prefixed patterns; the websocket
		// upgrade handshake already requires GET.
		mux.HandleFunc("/seastrike", server.HandleWs)

		log.Println("Listening to port 7272...")
		if err := http.ListenAndServe("127.0.0.1:7272", mux); err != nil {
			log.Println(err)
			os.Exit(1)
		}
	}()

	// Give the server time to start
	time.Sleep(time.Second * 2)

	c, _, err := dialer.Dial(testWsUrl, nil)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	clientConn = c

	var respSessionId mc.Message[mc.RespSessionId]
	if err := clientConn.ReadJSON(&respSessionId); err != nil {
		log.Println(err)
		os.Exit(1)
	}
	sessionID = respSessionId.Payload.SessionID
	log.Println("session ID:", sessionID)

	os.Exit(m.Run())
}
