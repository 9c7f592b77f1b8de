package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doHealthRequest(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func healthOK(context.Context) error   { return nil }
func healthDown(context.Context) error { return errors.New("down") }

func TestHealth_AllUp(t *testing.T) {
	h := healthProbe(healthOK, healthOK, func(context.Context) (int64, error) { return 2, nil })
	w, body := doHealthRequest(t, h)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "stocksimple", body["app"])
	assert.Equal(t, "up", body["db"])
	assert.Equal(t, "up", body["redis"])
	assert.Equal(t, float64(2), body["alertDLQ"])
}

func TestHealth_DBDown(t *testing.T) {
	h := healthProbe(healthDown, healthOK, func(context.Context) (int64, error) { return 0, nil })
	w, body := doHealthRequest(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "down", body["db"])
	assert.Equal(t, "up", body["redis"])
}

func TestHealth_RedisDown_NoBacklogReported(t *testing.T) {
	h := healthProbe(healthOK, healthDown, func(context.Context) (int64, error) { return 0, errors.New("down") })
	w, body := doHealthRequest(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "down", body["redis"])
	_, hasBacklog := body["alertDLQ"]
	assert.False(t, hasBacklog)
}
