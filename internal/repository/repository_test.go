package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-cells/internal/cell"
	"github.com/vancomm/minesweeper-cells/internal/database"
	"github.com/vancomm/minesweeper-cells/internal/grid"
)

// setupTestQueries needs a scratch database in TEST_DATABASE_URL.
func setupTestQueries(t *testing.T) *Queries {
	t.Helper()
	url, ok := os.LookupEnv("TEST_DATABASE_URL")
	if !ok || testing.Short() {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if _, err := database.Migrate(url, database.Migrations); err != nil {
		t.Fatal(err)
	}

	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return New(pool)
}

func TestCreateAndFetchBoard(t *testing.T) {
	q := setupTestQueries(t)
	ctx := context.Background()

	board, err := q.CreateBoard(ctx, 9, 16)
	require.NoError(t, err)
	assert.Equal(t, 9, board.Rows)
	assert.Equal(t, 16, board.Cols)
	assert.NotZero(t, board.BoardId)

	fetched, err := q.FetchBoard(ctx, board.BoardId)
	require.NoError(t, err)
	assert.Equal(t, board.BoardId, fetched.BoardId)
	assert.Equal(t, board.Rows, fetched.Rows)
}

func TestFetchMissingBoard(t *testing.T) {
	q := setupTestQueries(t)
	_, err := q.FetchBoard(context.Background(), -1)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestSaveAndFetchFields(t *testing.T) {
	q := setupTestQueries(t)
	ctx := context.Background()

	board, err := q.CreateBoard(ctx, 2, 2)
	require.NoError(t, err)

	fields, err := q.FetchFields(ctx, board.BoardId)
	require.NoError(t, err)
	assert.Empty(t, fields)

	records := []grid.Record{
		{Row: 1, Col: 1, Val: 1, Open: true},
		{Row: 0, Col: 0, Val: cell.Bomb, Marked: true},
	}
	require.NoError(t, q.SaveFields(ctx, board.BoardId, records))

	records[1].Marked = false
	require.NoError(t, q.SaveFields(ctx, board.BoardId, records[1:]))

	fields, err = q.FetchFields(ctx, board.BoardId)
	require.NoError(t, err)
	assert.Equal(t, []grid.Record{
		{Row: 0, Col: 0, Val: cell.Bomb},
		{Row: 1, Col: 1, Val: 1, Open: true},
	}, fields)
}

func TestSaveFieldsMissingBoard(t *testing.T) {
	q := setupTestQueries(t)
	err := q.SaveFields(context.Background(), -1, []grid.Record{{Row: 0, Col: 0}})
	assert.ErrorIs(t, err, ErrBoardNotFound)

	err = q.SaveFields(context.Background(), -1, nil)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}
