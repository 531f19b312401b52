package connection

import (
	"encoding/base64"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "seastrike/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	CleanupPeriodically()

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
}

type SeastrikeSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*SeastrikeSessionManager)(nil)

func NewSeastrikeSessionManager() *SeastrikeSessionManager {
	initMapSize := 10

	return &SeastrikeSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: time.Minute * 20,
	}
}

func (ssm *SeastrikeSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))

	ssm.mu.Lock()
	ssm.sessions[sessionId] = NewSession(sessionId, conn)
	session := ssm.sessions[sessionId]
	ssm.mu.Unlock()

	return session
}

func (ssm *SeastrikeSessionManager) FindSession(sessionId string) (*Session, error) {
	ssm.mu.RLock()
	defer ssm.mu.RUnlock()

	session, prs := ssm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	return session, nil
}

func (ssm *SeastrikeSessionManager) TerminateSession(sessionId string) {
	ssm.mu.Lock()
	delete(ssm.sessions, sessionId)
	ssm.mu.Unlock()
}

// To ensure that there are no dangling connections, sessions older
// than the cleanup interval are treated as stale and removed.
func (ssm *SeastrikeSessionManager) CleanupPeriodically() {
	assumedClosedConns := 10

	for {
		time.Sleep(ssm.cleanupInterval)

		ssm.mu.Lock()
		toDelete := make([]string, 0, assumedClosedConns)

		for id, session := range ssm.sessions {
			if time.Since(session.createdAt) > ssm.cleanupInterval {
				toDelete = append(toDelete, id)
			}
		}

		for _, id := range toDelete {
			delete(ssm.sessions, id)
			log.Printf("removed stale session: %s", id)
		}
		ssm.mu.Unlock()
	}
}

func (ssm *SeastrikeSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	return session.writeToConnWithRetry(msg, msgType)
}

func (ssm *SeastrikeSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	messageType, payload, err := session.conn.ReadMessage()
	if err != nil {
		session.onConnErr(err)
		return -1, nil, err
	}
	return messageType, payload, nil
}
