package battleship

import (
	"sync"

	"github.com/google/uuid"

	cerr "seastrike/internal/error"
)

type GameManager interface {
	CreateGame(cfg GameConfig) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
}

// SelectorFactory builds a fresh target selector for each new game,
// so hunt state never leaks between matches.
type SelectorFactory func() TargetSelector

type SeastrikeGameManager struct {
	games           map[string]*Game
	selectorFactory SelectorFactory
	mu              sync.RWMutex
}

var _ GameManager = (*SeastrikeGameManager)(nil)

func NewSeastrikeGameManager(factory SelectorFactory) *SeastrikeGameManager {
	return &SeastrikeGameManager{
		games:           make(map[string]*Game, 10),
		selectorFactory: factory,
	}
}

func (sgm *SeastrikeGameManager) CreateGame(cfg GameConfig) (*Game, error) {
	gameUuid := uuid.NewString()[:6]

	game, err := NewGame(gameUuid, cfg, sgm.selectorFactory())
	if err != nil {
		return nil, err
	}

	sgm.mu.Lock()
	sgm.games[gameUuid] = game
	sgm.mu.Unlock()

	return game, nil
}

func (sgm *SeastrikeGameManager) GetGame(gameUuid string) (*Game, error) {
	sgm.mu.RLock()
	game, prs := sgm.games[gameUuid]
	sgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}
	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}

	return game, nil
}

func (sgm *SeastrikeGameManager) TerminateGame(gameUuid string) {
	sgm.mu.Lock()
	delete(sgm.games, gameUuid)
	sgm.mu.Unlock()
}
