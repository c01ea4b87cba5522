package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"holdem-server/internal/config"
	"holdem-server/pkg/room"
)

// table names are used in URLs and logs
const tableNamePattern = `[A-Za-z0-9_-]{1,40}`

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version        string
	pitBoss        *room.PitBoss
	allowedOrigins map[string]bool
}

// NewMux returns a new HTTP mux
func NewMux(version string, cfg config.Config) (*Mux, error) {
	pitBoss, err := room.NewPitBoss(cfg.Table, cfg.Clock)
	if err != nil {
		return nil, err
	}

	this := &Mux{
		Router:         gmux.NewRouter(),
		version:        version,
		pitBoss:        pitBoss,
		allowedOrigins: make(map[string]bool),
	}

	for _, origin := range cfg.WebSocket.AllowedOrigins {
		this.allowedOrigins[origin] = true
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())

	tr := r.PathPrefix("/table/{name:" + tableNamePattern + "}").Subrouter()
	tr.Methods(http.MethodGet).Path("").Handler(this.getTableName())
	tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableNameWS())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, nil)
	})

	return this, nil
}
