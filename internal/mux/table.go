package mux

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"twentyone-server/pkg/playable"
	"twentyone-server/pkg/playable/twentyone"
	"twentyone-server/pkg/room"
)

const maxNameLength = 40

type postTablePayload struct {
	Name string `json:"name"`
}

func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTablePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		name, err := twentyone.NormalizeName(pp.Name)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if utf8.RuneCountInString(name) > maxNameLength {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("name cannot be more than %d characters", maxNameLength))
			return
		}

		dealer, err := m.pitBoss.OpenTable(name)
		if err != nil {
			var ue twentyone.UserError
			if errors.As(err, &ue) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeTableState(w, http.StatusCreated, dealer)
	}
}

func (m *Mux) getTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeTableState(w, http.StatusOK, dealerFromContext(r))
	}
}

func (m *Mux) deleteTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.pitBoss.CloseTable(dealerFromContext(r).UUID); err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, playable.OK())
	}
}

type postTableActionPayload struct {
	Action string `json:"action"`
}

func (m *Mux) postTableUUIDAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTableActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		dealer := dealerFromContext(r)
		if _, err := dealer.Do(&playable.PayloadIn{
			Action:  room.MessageAction,
			Subject: pp.Action,
		}); err != nil {
			writeTableError(w, err)
			return
		}

		writeTableState(w, http.StatusOK, dealer)
	}
}

func writeTableState(w http.ResponseWriter, statusCode int, dealer *room.Dealer) {
	ts, err := dealer.State()
	if err != nil {
		writeTableError(w, err)
		return
	}

	writeJSON(w, statusCode, ts)
}

// writeTableError maps a closed or missing table to 404 and anything the game rejected to 400
func writeTableError(w http.ResponseWriter, err error) {
	if errors.Is(err, room.ErrTableClosed) || errors.Is(err, room.ErrTableNotFound) {
		writeJSONError(w, http.StatusNotFound, err)
		return
	}

	writeJSONError(w, http.StatusBadRequest, err)
}
