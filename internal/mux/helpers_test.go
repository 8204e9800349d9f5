package mux

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertDo sends the request and decodes the JSON response into respObj when the status code matches
func assertDo(t *testing.T, ts *httptest.Server, method, path string, payload interface{}, respObj interface{}, statusCode int) {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case nil:
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if !assert.NoError(t, err) {
			return
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if !assert.NoError(t, err) {
		return
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client().Do(req)
	if !assert.NoError(t, err) {
		return
	}
	defer resp.Body.Close()

	if !assert.Equal(t, statusCode, resp.StatusCode) {
		b, _ := ioutil.ReadAll(resp.Body)
		t.Log(string(b))
		return
	}

	if respObj != nil {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(respObj))
	}
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()
	assertDo(t, ts, http.MethodGet, path, nil, respObj, statusCode)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int) {
	t.Helper()
	assertDo(t, ts, http.MethodPost, path, payload, respObj, statusCode)
}

func assertDelete(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()
	assertDo(t, ts, http.MethodDelete, path, nil, respObj, statusCode)
}
