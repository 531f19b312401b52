package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"seastrike/api"
	"seastrike/db"
	"seastrike/db/query"
	mb "seastrike/models/battleship"
	"seastrike/models/bot"
	mc "seastrike/models/connection"
)

func main() {
	if os.Getenv("STAGE") != "prod" {
		if err := godotenv.Load(".env"); err != nil {
			panic(err)
		}
	}
	stage := os.Getenv("STAGE")
	if stage != "dev" && stage != "prod" {
		panic("stage must be either dev or prod")
	}

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		panic(err)
	}

	var q query.Querier = query.NoopQuerier{}
	if psqlUrl := os.Getenv("DATABASE_URL"); psqlUrl != "" {
		q = query.New(db.MustConnectToDb(psqlUrl))
	} else {
		log.Println("DATABASE_URL not set; match analytics disabled")
	}

	defaultCfg := mb.DefaultGameConfig()
	if gridSizeEnv := os.Getenv("GRID_SIZE"); gridSizeEnv != "" {
		gridSize, err := strconv.Atoi(gridSizeEnv)
		if err != nil {
			panic(err)
		}
		defaultCfg.GridSize = gridSize
	}

	gameManager := mb.NewSeastrikeGameManager(func() mb.TargetSelector {
		return bot.New()
	})

	sessionManager := mc.NewSeastrikeSessionManager()
	go sessionManager.CleanupPeriodically()

	server := api.NewServer(
		sessionManager,
		gameManager,
		q,
		api.WithPort(port),
		api.WithStage(stage),
		api.WithDefaultGameConfig(defaultCfg),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /seastrike", server.HandleWs)

	log.Printf("Listening to port %d\n", server.Port())
	log.Fatalln(http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", server.Port()), mux))
}
