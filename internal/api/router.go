// Package api serves the board over HTTP: a JSON snapshot of the visible
// window, move and status mutations, and a websocket feed of invalidations.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/prodboard/internal/aggregator"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/alexanderramin/prodboard/internal/repository"
	"github.com/alexanderramin/prodboard/internal/service"
	"github.com/gorilla/mux"
)

// Deps are the collaborators of the HTTP API.
type Deps struct {
	Fetcher      provider.Fetcher
	Aggregator   *aggregator.Aggregator
	Moves        service.MoveService
	Statuses     service.StatusService
	Hub          *Hub
	Pinger       Pinger
	Clock        func() time.Time
	DaysBack     int
	DaysForward  int
	IssuedStatus string
}

// NewRouter builds the API router.
func NewRouter(deps Deps, logger *slog.Logger) *mux.Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	h := &handlers{deps: deps, records: repository.NewRecords(deps.Fetcher)}

	r := mux.NewRouter()
	r.Use(Logging(logger))
	r.Use(Recovery(logger))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.health).Methods(http.MethodGet)
	api.HandleFunc("/board", h.board).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/move", h.move).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/status", h.status).Methods(http.MethodPost)
	if deps.Hub != nil {
		api.HandleFunc("/ws", deps.Hub.serveWS).Methods(http.MethodGet)
	}
	return r
}
