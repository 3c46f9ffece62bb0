package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"client_tracker_backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, body []byte) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestErrorHandlerMapsAttachedErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"duplicate", fmt.Errorf("%w: clients_pkey", repositories.ErrDuplicateKey), http.StatusBadRequest, "Duplicate entry"},
		{"not found", repositories.ErrNotFound, http.StatusNotFound, "Record not found"},
		{"other", errBoom, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine(DevelopmentMode(false), ErrorHandler())
			engine.GET("/x", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := doRequest(engine, http.MethodGet, "/x", "", nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decodeBody(t, w.Body.Bytes())["error"])
		})
	}
}

func TestErrorHandlerHidesDetailsOutsideDevelopment(t *testing.T) {
	for _, dev := range []bool{true, false} {
		engine := newEngine(DevelopmentMode(dev), ErrorHandler())
		engine.GET("/x", func(c *gin.Context) { _ = c.Error(errBoom) })

		body := decodeBody(t, doRequest(engine, http.MethodGet, "/x", "", nil).Body.Bytes())
		if dev {
			assert.Equal(t, "boom", body["message"])
		} else {
			assert.Equal(t, "Something went wrong", body["message"])
		}
	}
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	engine := newEngine(ErrorHandler())
	engine.GET("/x", func(c *gin.Context) {
		_ = c.Error(errBoom)
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
	})

	w := doRequest(engine, http.MethodGet, "/x", "", nil)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRecovery(t *testing.T) {
	engine := newEngine(Recovery(), DevelopmentMode(false))
	engine.GET("/x", func(c *gin.Context) { panic("kaboom") })

	w := doRequest(engine, http.MethodGet, "/x", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "Something went wrong", body["message"])
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
}
