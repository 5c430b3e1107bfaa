package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-cells/internal/cell"
	"github.com/vancomm/minesweeper-cells/internal/config"
	"github.com/vancomm/minesweeper-cells/internal/grid"
	"github.com/vancomm/minesweeper-cells/internal/render"
	"github.com/vancomm/minesweeper-cells/internal/repository"
)

// MaxCells bounds the area of a board.
const MaxCells = 128 * 128

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// BoardStore is the persistence the handlers need; *repository.Queries
// implements it.
type BoardStore interface {
	CreateBoard(ctx context.Context, rows, cols int) (*repository.Board, error)
	FetchBoard(ctx context.Context, boardId int64) (*repository.Board, error)
	FetchFields(ctx context.Context, boardId int64) ([]grid.Record, error)
	SaveFields(ctx context.Context, boardId int64, records []grid.Record) error
}

type BoardHandler struct {
	logger *slog.Logger
	store  BoardStore
	ws     *config.WebSocket
	dec    *schema.Decoder
}

func NewBoardHandler(
	logger *slog.Logger,
	store BoardStore,
	ws *config.WebSocket,
) *BoardHandler {
	return &BoardHandler{
		logger: logger,
		store:  store,
		ws:     ws,
		dec:    newDecoder(),
	}
}

func (b *BoardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /boards", b.Create)
	mux.HandleFunc("PUT /boards/{id}/cells", b.Restore)
	mux.HandleFunc("GET /boards/{id}/cells", b.Cells)
	mux.HandleFunc("POST /boards/{id}/cells/{row}/{col}/{op}", b.Apply)
	mux.HandleFunc("/boards/{id}/connect", b.ConnectWS)
}

func (b *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateBoardDTO
	if err := b.dec.Decode(&dto, r.URL.Query()); err != nil {
		sendError(w, b.logger, "", fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	if err := checkDimensions(dto.Rows, dto.Cols); err != nil {
		sendError(w, b.logger, "", err)
		return
	}

	board, err := b.store.CreateBoard(r.Context(), dto.Rows, dto.Cols)
	if err != nil {
		sendError(w, b.logger, "unable to create board", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, b.logger, NewBoardDTO(board))
}

// Restore loads a JSON list of records into the board. Records outside the
// board reject the whole list.
func (b *BoardHandler) Restore(w http.ResponseWriter, r *http.Request) {
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

	var records []grid.Record
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&records); err != nil {
		sendError(w, b.logger, "", fmt.Errorf("%w: %w", errBadRequest, err))
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
	if err := g.Restore(records); err != nil {
		sendError(w, b.logger, "", err)
		return
	}
	if err := b.store.SaveFields(r.Context(), boardId, records); err != nil {
		sendError(w, b.logger, "unable to save fields", err)
		return
	}

	sendJSONOrLog(w, b.logger, newCellsDTO(boardId, g, theme))
}

func (b *BoardHandler) Cells(w http.ResponseWriter, r *http.Request) {
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

	sendJSONOrLog(w, b.logger, newCellsDTO(boardId, g, theme))
}

// Apply runs one command against a cell, stores the cell and replies with
// the asset it should now show.
func (b *BoardHandler) Apply(w http.ResponseWriter, r *http.Request) {
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
	cmd, err := parsePathCommand(r)
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

	redraw, err := g.Apply(cmd)
	if err != nil {
		sendError(w, b.logger, "", err)
		return
	}
	v, err := g.At(cmd.Coordinate)
	if err != nil {
		sendError(w, b.logger, "", err)
		return
	}
	// the sweep marker is never stored, so a reveal changes nothing on disk
	if cmd.Op != grid.OpReveal {
		record := grid.NewRecord(v.State())
		if err := b.store.SaveFields(r.Context(), boardId, []grid.Record{record}); err != nil {
			sendError(w, b.logger, "unable to save field", err)
			return
		}
	}

	id := render.Resolve(v.State(), theme.Dark())
	sendJSONOrLog(w, b.logger, newCellDTO(id, cmd.Row, cmd.Col, redraw))
}

// checkDimensions validates a board size without allocating it.
func checkDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w (rows = %d, cols = %d)", grid.ErrBadDimensions, rows, cols)
	}
	if rows > MaxCells/cols {
		return fmt.Errorf("%w: board larger than %d cells", errBadRequest, MaxCells)
	}
	return nil
}

func (b *BoardHandler) loadGrid(ctx context.Context, board *repository.Board) (*grid.Grid, error) {
	g, err := grid.New(board.Rows, board.Cols)
	if err != nil {
		return nil, err
	}
	records, err := b.store.FetchFields(ctx, board.BoardId)
	if err != nil {
		return nil, err
	}
	if err := g.Restore(records); err != nil {
		return nil, fmt.Errorf("stored fields do not fit board %d: %v", board.BoardId, err)
	}
	return g, nil
}

func (b *BoardHandler) parseTheme(r *http.Request) (render.Theme, error) {
	var dto ThemeDTO
	if err := b.dec.Decode(&dto, r.URL.Query()); err != nil {
		return render.Light, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return render.ParseTheme(dto.Theme)
}

func parseBoardId(r *http.Request) (int64, error) {
	boardId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid board id", errBadRequest)
	}
	return boardId, nil
}

func parsePathCommand(r *http.Request) (grid.Command, error) {
	op, err := grid.ParseOp(r.PathValue("op"))
	if err != nil {
		return grid.Command{}, err
	}
	row, err := strconv.Atoi(r.PathValue("row"))
	if err != nil {
		return grid.Command{}, fmt.Errorf("%w: row must be an int", errBadRequest)
	}
	col, err := strconv.Atoi(r.PathValue("col"))
	if err != nil {
		return grid.Command{}, fmt.Errorf("%w: col must be an int", errBadRequest)
	}
	return grid.Command{Op: op, Coordinate: cell.Coordinate{Row: row, Col: col}}, nil
}

func newCellsDTO(boardId int64, g *grid.Grid, theme render.Theme) *CellsDTO {
	return &CellsDTO{
		BoardId: strconv.FormatInt(boardId, 10),
		Theme:   theme.String(),
		Assets:  g.Assets(theme.Dark()),
	}
}
