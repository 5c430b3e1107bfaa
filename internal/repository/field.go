package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-cells/internal/grid"
)

type cellField struct {
	RowNo        int  `db:"row_no"`
	ColNo        int  `db:"col_no"`
	Value        int  `db:"value"`
	Uncovered    bool `db:"uncovered"`
	MarkedAsSafe bool `db:"marked_as_safe"`
}

// FetchFields returns the stored cells of a board in row-major order. Cells
// that were never saved are absent.
func (q *Queries) FetchFields(ctx context.Context, boardId int64) ([]grid.Record, error) {
	rs, err := q.db.Query(
		ctx,
		`SELECT row_no, col_no, value, uncovered, marked_as_safe
		FROM cell_field
		WHERE board_id = $1
		ORDER BY row_no, col_no;`,
		boardId,
	)
	if err != nil {
		return nil, err
	}
	fields, err := pgx.CollectRows(rs, pgx.RowToStructByName[cellField])
	if err != nil {
		return nil, err
	}
	records := make([]grid.Record, len(fields))
	for i, f := range fields {
		records[i] = grid.Record{
			Row:    f.RowNo,
			Col:    f.ColNo,
			Val:    f.Value,
			Open:   f.Uncovered,
			Marked: f.MarkedAsSafe,
		}
	}
	return records, nil
}

// SaveFields upserts records in one batch and bumps the board's
// updated_at. The game-end marker has no column and is never stored.
func (q *Queries) SaveFields(ctx context.Context, boardId int64, records []grid.Record) error {
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(
			`INSERT INTO cell_field (board_id, row_no, col_no, value, uncovered, marked_as_safe)
			VALUES (@board_id, @row_no, @col_no, @value, @uncovered, @marked_as_safe)
			ON CONFLICT (board_id, row_no, col_no)
			DO UPDATE SET
				value = excluded.value,
				uncovered = excluded.uncovered,
				marked_as_safe = excluded.marked_as_safe;`,
			pgx.NamedArgs{
				"board_id":       boardId,
				"row_no":         r.Row,
				"col_no":         r.Col,
				"value":          r.Val,
				"uncovered":      r.Open,
				"marked_as_safe": r.Marked,
			},
		)
	}
	batch.Queue(`UPDATE board SET updated_at = now() WHERE board_id = $1;`, boardId)

	results := q.db.SendBatch(ctx, batch)
	for i := range records {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("unable to save cell %d:%d: %w", records[i].Row, records[i].Col, mapError(err))
		}
	}
	tag, err := results.Exec()
	if err != nil {
		results.Close()
		return err
	}
	if err := results.Close(); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBoardNotFound
	}
	return nil
}
