package query

import (
	"context"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/require"
)

func testInet(t *testing.T) pqtype.Inet {
	t.Helper()
	_, ipnet, err := net.ParseCIDR("127.0.0.1/32")
	require.NoError(t, err)
	return pqtype.Inet{IPNet: *ipnet, Valid: true}
}

func TestIncrementMatchesStartedCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	serverIp := testInet(t)
	mock.ExpectExec("INSERT INTO match_analytics").
		WithArgs(serverIp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	q := New(db)
	require.NoError(t, q.IncrementMatchesStartedCount(context.Background(), serverIp))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMatchesStartedCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	serverIp := testInet(t)
	mock.ExpectQuery("SELECT matches_started FROM match_analytics").
		WithArgs(serverIp).
		WillReturnRows(sqlmock.NewRows([]string{"matches_started"}).AddRow(42))

	q := New(db)
	count, err := q.GetMatchesStartedCount(context.Background(), serverIp)
	require.NoError(t, err)
	require.Equal(t, int64(42), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordMatchResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	params := RecordMatchResultParams{
		ServerIp:    testInet(t),
		Winner:      "player",
		PlayerShots: 23,
		BotShots:    19,
		DurationSec: 312,
	}
	mock.ExpectExec("INSERT INTO match_results").
		WithArgs(params.ServerIp, params.Winner, params.PlayerShots, params.BotShots, params.DurationSec).
		WillReturnResult(sqlmock.NewResult(1, 1))

	q := New(db)
	require.NoError(t, q.RecordMatchResult(context.Background(), params))
	require.NoError(t, mock.ExpectationsWereMet())
}
