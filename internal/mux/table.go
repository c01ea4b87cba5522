package mux

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

var errTableNotFound = errors.New("table not found")

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.pitBoss.Tables())
	}
}

// getTableName returns the public state of a live table
func (m *Mux) getTableName() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer, ok := m.pitBoss.Dealer(mux.Vars(r)["name"])
		if !ok {
			writeJSONError(w, http.StatusNotFound, errTableNotFound)
			return
		}

		writeJSON(w, http.StatusOK, dealer.PublicState())
	}
}
