package mux

import (
	"context"
	"errors"
	"net/http"

	gmux "github.com/gorilla/mux"
	"twentyone-server/pkg/model"
	"twentyone-server/pkg/room"
)

type ctxKey int

const (
	ctxDealerKey ctxKey = iota
)

// MatchHistory looks up finished matches
type MatchHistory interface {
	GetMatches(ctx context.Context, offset int64, limit int) ([]*model.Match, error)
	GetMatchByID(ctx context.Context, id string) (*model.Match, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss

	// history is nil when match history is disabled
	history MatchHistory
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss, history MatchHistory) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		history: history,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())

	tr := r.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
	tr.Use(this.tableMiddleware)

	tr.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
	tr.Methods(http.MethodDelete).Path("").Handler(this.deleteTableUUID())
	tr.Methods(http.MethodPost).Path("/action").Handler(this.postTableUUIDAction())
	tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())

	mr := r.PathPrefix("/match").Subrouter()
	mr.Use(this.historyMiddleware)

	mr.Methods(http.MethodGet).Path("").Handler(this.getMatch())
	mr.Methods(http.MethodGet).Path("/{id:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Handler(this.getMatchID())

	return this
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dealer, err := m.pitBoss.Dealer(gmux.Vars(r)["uuid"])
		if err != nil {
			if errors.Is(err, room.ErrTableNotFound) {
				writeJSONError(w, http.StatusNotFound, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func (m *Mux) historyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.history == nil {
			writeJSONError(w, http.StatusNotFound, errors.New("match history is disabled"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func dealerFromContext(r *http.Request) *room.Dealer {
	return r.Context().Value(ctxDealerKey).(*room.Dealer)
}
