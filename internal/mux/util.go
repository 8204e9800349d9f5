package mux

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

const maxRows = 100
const defaultRows = 100

// parsePaginationOptions reads the start and rows query parameters
func parsePaginationOptions(r *http.Request) (start int64, rows int, err error) {
	rows = defaultRows

	if s := r.FormValue("start"); s != "" {
		if start, err = strconv.ParseInt(s, 10, 64); err != nil {
			return 0, 0, err
		}

		if start < 0 {
			return 0, 0, errors.New("start cannot be less than zero")
		}
	}

	if s := r.FormValue("rows"); s != "" {
		if rows, err = strconv.Atoi(s); err != nil {
			return 0, 0, err
		}

		switch {
		case rows <= 0:
			return 0, 0, errors.New("rows must be greater than zero")
		case rows > maxRows:
			return 0, 0, fmt.Errorf("rows cannot be greater than %d", maxRows)
		}
	}

	return start, rows, nil
}

// decodeRequest decodes a JSON body into payload
// On failure the error response has been written and false is returned.
func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" && mediaType != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// if err is sql.ErrNoRows, treat as 404, otherwise treat as a 500
func writeMaybeNotFoundError(w http.ResponseWriter, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, nil)
		return
	}

	writeJSONError(w, http.StatusInternalServerError, err)
}

// writeJSONError only exposes the error message for client errors
func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	msg := http.StatusText(statusCode)
	if statusCode < 500 && err != nil {
		msg = err.Error()
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
