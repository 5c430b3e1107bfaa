package main

import (
	"fmt"

	"github.com/vancomm/minesweeper-cells/internal/cell"
	"github.com/vancomm/minesweeper-cells/internal/grid"
)

// preview board; '*' is a bomb, digits are hints
var layout = []string{
	"1112*100",
	"1*111211",
	"111112*1",
	"001*1111",
	"11211011",
	"1*112*21",
	"11111*11",
	"00001110",
}

func parseLayout(rows []string) ([]grid.Record, error) {
	var records []grid.Record
	for r, line := range rows {
		for c, ch := range line {
			rec := grid.Record{Row: r, Col: c}
			switch {
			case ch == '*':
				rec.Val = cell.Bomb
			case '0' <= ch && ch <= '8':
				rec.Val = int(ch - '0')
			default:
				return nil, fmt.Errorf("bad layout symbol %q at %d:%d", ch, r, c)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}
