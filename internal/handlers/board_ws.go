package handlers

import (
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-cells/internal/cell"
	"github.com/vancomm/minesweeper-cells/internal/grid"
	"github.com/vancomm/minesweeper-cells/internal/render"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(twoStrings []string) (c cell.Coordinate, err error) {
	if c.Row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("%w: first argument must be an int", errBadRequest)
		return
	}
	if c.Col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("%w: second argument must be an int", errBadRequest)
		return
	}
	return
}

var commandNargs = map[string]int{
	"u": 2,
	"r": 2,
	"f": 2,
	"s": 0,
	"t": 1,
}

type wsCommand struct {
	name  string
	cmd   grid.Command
	theme render.Theme
}

func parseCommand(c string) (wsCommand, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return wsCommand{}, fmt.Errorf("%w: empty command", errBadRequest)
	}

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return wsCommand{}, fmt.Errorf("%w: unknown command %q", errBadRequest, parts[0])
	}
	if nargs != len(parts)-1 {
		return wsCommand{}, fmt.Errorf("%w: invalid number of arguments", errBadRequest)
	}

	res := wsCommand{name: parts[0]}
	switch parts[0] {
	case "u", "r", "f":
		op, err := grid.ParseOp(parts[0])
		if err != nil {
			return wsCommand{}, err
		}
		coord, err := parseRowCol(parts[1:])
		if err != nil {
			return wsCommand{}, err
		}
		res.cmd = grid.Command{Op: op, Coordinate: coord}
	case "t":
		theme, err := render.ParseTheme(parts[1])
		if err != nil {
			return wsCommand{}, err
		}
		res.theme = theme
	}
	return res, nil
}

type wsReplyDTO struct {
	Theme  string     `json:"theme"`
	Assets [][]string `json:"assets,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// session is the state of one websocket connection. The grid outlives the
// individual frames, so game-end styling stays visible until the
// connection closes.
type session struct {
	boardId int64
	grid    *grid.Grid
	theme   render.Theme
}

// run applies the commands of one frame in order and returns the cells
// whose stored fields changed. It stops at the first bad command.
func (s *session) run(text string) ([]grid.Record, error) {
	var changed []grid.Record
	seen := make(map[cell.Coordinate]bool)
	touch := func(c cell.Coordinate) {
		if seen[c] {
			return
		}
		seen[c] = true
		v, _ := s.grid.At(c)
		changed = append(changed, grid.NewRecord(v.State()))
	}

	for _, line := range iterBySep(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := parseCommand(line)
		if err != nil {
			return refresh(s.grid, changed), err
		}
		switch c.name {
		case "s":
			s.grid.Sweep()
		case "t":
			s.theme = c.theme
		default:
			redraw, err := s.grid.Apply(c.cmd)
			if err != nil {
				return refresh(s.grid, changed), err
			}
			if redraw && c.cmd.Op != grid.OpReveal {
				touch(c.cmd.Coordinate)
			}
		}
	}
	return refresh(s.grid, changed), nil
}

// refresh re-reads records collected before later commands of the same
// frame changed them again.
func refresh(g *grid.Grid, records []grid.Record) []grid.Record {
	for i, r := range records {
		v, _ := g.At(r.Coordinate())
		records[i] = grid.NewRecord(v.State())
	}
	return records
}

func (s *session) reply(err error) wsReplyDTO {
	dto := wsReplyDTO{
		Theme:  s.theme.String(),
		Assets: s.grid.Assets(s.theme.Dark()),
	}
	if err != nil {
		dto.Error = err.Error()
	}
	return dto
}

func (b *BoardHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseBoardId(r)
	if err != nil {
		sendError(w, b.logger, "", err)
		return
	}
	theme, err := b.parseTheme(r)
	if err != nil {
		sendError(w, b.logger, "", err)
		return
	}
	board, err := b.store.FetchBoard(r.Context(), boardId)
	if err != nil {
		sendError(w, b.logger, "unable to fetch board", err)
		return
	}
	g, err := b.loadGrid(r.Context(), board)
	if err != nil {
		sendError(w, b.logger, "unable to load grid", err)
		return
	}

	c, err := b.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}

	defer c.Close()

	s := &session{boardId: boardId, grid: g, theme: theme}
	if err := c.WriteJSON(s.reply(nil)); err != nil {
		b.logger.Error("unable to write json", slog.Any("error", err))
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				b.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		b.logger.Debug(fmt.Sprintf("\t> %s", text))

		changed, cmdErr := s.run(text)
		if len(changed) > 0 {
			if err := b.store.SaveFields(r.Context(), boardId, changed); err != nil {
				b.logger.Error("unable to save fields", slog.Any("error", err))
				return
			}
		}

		if err := c.WriteJSON(s.reply(cmdErr)); err != nil {
			b.logger.Error("unable to write json", slog.Any("error", err))
			break
		}
		b.logger.Debug("\t< <asset grid>")
	}
}
