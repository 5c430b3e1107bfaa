package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type Board struct {
	BoardId   int64     `db:"board_id" json:"board_id"`
	Rows      int       `db:"rows" json:"rows"`
	Cols      int       `db:"cols" json:"cols"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (q *Queries) CreateBoard(ctx context.Context, rows, cols int) (*Board, error) {
	rs, _ := q.db.Query(
		ctx,
		`INSERT INTO board (rows, cols)
		VALUES (@rows, @cols)
		RETURNING board_id, rows, cols, created_at, updated_at;`,
		pgx.NamedArgs{"rows": rows, "cols": cols},
	)
	return pgx.CollectExactlyOneRow(rs, pgx.RowToAddrOfStructByName[Board])
}

func (q *Queries) FetchBoard(ctx context.Context, boardId int64) (*Board, error) {
	rs, _ := q.db.Query(
		ctx,
		`SELECT board_id, rows, cols, created_at, updated_at
		FROM board
		WHERE board_id = $1;`,
		boardId,
	)
	board, err := pgx.CollectExactlyOneRow(rs, pgx.RowToAddrOfStructByName[Board])
	if err != nil {
		return nil, mapError(err)
	}
	return board, nil
}
