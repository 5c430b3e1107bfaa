package app

import (
	"net/http"

	"github.com/vancomm/minesweeper-cells/internal/handlers"
	"github.com/vancomm/minesweeper-cells/internal/repository"
)

func (a *App) loadRoutes() {
	boards := handlers.NewBoardHandler(
		a.logger, repository.New(a.db), a.ws,
	)
	boards.Register(a.router)

	a.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := a.db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
