package mux

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestHealthHandler(t *testing.T) {
	ts, pitBoss := newTestServer(t, 5, nil)
	_, _ = pitBoss.OpenTable("ann")

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
	assert.Equal(t, 1, expects.Tables)
}
