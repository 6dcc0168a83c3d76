package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheckHandler(t *testing.T) {
	app := &application{
		config: &Config{
			Environment: "testing",
			Version:     "1.0.0",
		},
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	res := httptest.NewRecorder()

	app.healthCheckHandler(res, req)

	status, _, gotBody := readResponse(t, res.Result())
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", gotBody["status"])

	systemInfo := gotBody["system_info"].(map[string]any)
	assert.Equal(t, "testing", systemInfo["environment"])
	assert.Equal(t, "1.0.0", systemInfo["version"])
}
