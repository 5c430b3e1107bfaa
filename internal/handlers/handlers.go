package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-cells/internal/grid"
	"github.com/vancomm/minesweeper-cells/internal/render"
	"github.com/vancomm/minesweeper-cells/internal/repository"
)

var errInternal = errors.New("internal error")

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, repository.ErrBoardNotFound):
		return http.StatusNotFound
	case errors.Is(err, grid.ErrBadDimensions),
		errors.Is(err, grid.ErrOutOfBounds),
		errors.Is(err, grid.ErrUnknownOp),
		errors.Is(err, render.ErrUnknownTheme),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// sendError replies with the status matching err. Server errors are logged
// and their cause is not sent to the client.
func sendError(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		if msg == "" {
			msg = "request failed"
		}
		logger.Error(msg, slog.Any("error", err))
		err = errInternal
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if werr := json.NewEncoder(w).Encode(wrapError(err)); werr != nil {
		logger.Error("unable to send error", slog.Any("error", werr))
	}
}
