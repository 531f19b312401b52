package query

import (
	"context"
	"database/sql"
	"time"

	"github.com/sqlc-dev/pqtype"
)

const QuerierCtxTimeout = time.Second * 10

const incrementMatchesStartedCount = `
INSERT INTO match_analytics (server_ip, matches_started)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET matches_started = match_analytics.matches_started + 1
`

const getMatchesStartedCount = `
SELECT matches_started FROM match_analytics WHERE server_ip = $1
`

const recordMatchResult = `
INSERT INTO match_results (server_ip, winner, player_shots, bot_shots, duration_sec)
VALUES ($1, $2, $3, $4, $5)
`

type RecordMatchResultParams struct {
	ServerIp    pqtype.Inet
	Winner      string
	PlayerShots int32
	BotShots    int32
	DurationSec int32
}

// Querier records coarse per-server match analytics. Finished-match
// counters and outcomes only; no game state is ever persisted.
type Querier interface {
	IncrementMatchesStartedCount(ctx context.Context, serverIp pqtype.Inet) error
	GetMatchesStartedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	RecordMatchResult(ctx context.Context, params RecordMatchResultParams) error
}

type Queries struct {
	db *sql.DB
}

var _ Querier = (*Queries)(nil)

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

func (q *Queries) IncrementMatchesStartedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementMatchesStartedCount, serverIp)
	return err
}

func (q *Queries) GetMatchesStartedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, getMatchesStartedCount, serverIp)
	var count int64
	err := row.Scan(&count)
	return count, err
}

func (q *Queries) RecordMatchResult(ctx context.Context, params RecordMatchResultParams) error {
	_, err := q.db.ExecContext(ctx, recordMatchResult,
		params.ServerIp,
		params.Winner,
		params.PlayerShots,
		params.BotShots,
		params.DurationSec,
	)
	return err
}

// NoopQuerier keeps the server runnable without a database; every
// call succeeds and records nothing.
type NoopQuerier struct{}

var _ Querier = NoopQuerier{}

func (NoopQuerier) IncrementMatchesStartedCount(ctx context.Context, serverIp pqtype.Inet) error {
	return nil
}

func (NoopQuerier) GetMatchesStartedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	return 0, nil
}

func (NoopQuerier) RecordMatchResult(ctx context.Context, params RecordMatchResultParams) error {
	return nil
}
