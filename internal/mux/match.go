package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
)

func (m *Mux) getMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		matches, err := m.history.GetMatches(r.Context(), offset, limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, matches)
	}
}

func (m *Mux) getMatchID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := m.history.GetMatchByID(r.Context(), gmux.Vars(r)["id"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, match)
	}
}
