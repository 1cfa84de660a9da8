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

type fixedStats struct{ published, failed int64 }

func (s fixedStats) Stats() (int64, int64) { return s.published, s.failed }

type healthEnvelope = APIResponse[HealthResponse]

func runHealth(t *testing.T, h *SystemHandler) (int, healthEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	h.Health(c)

	var body healthEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		h := NewSystemHandler("1.2.3")
		h.AddCheck("database", func(context.Context) error { return nil })
		h.SetEventStats(fixedStats{published: 7, failed: 1})

		code, body := runHealth(t, h)

		assert.Equal(t, http.StatusOK, code)
		assert.True(t, body.Success)
		assert.Equal(t, "ok", body.Data.Status)
		assert.Equal(t, "1.2.3", body.Data.Version)
		assert.Equal(t, "ok", body.Data.Checks["database"])
		require.NotNil(t, body.Data.Events)
		assert.Equal(t, int64(7), body.Data.Events.Published)
		assert.Equal(t, int64(1), body.Data.Events.Failed)
	})

	t.Run("failing check degrades", func(t *testing.T) {
		h := NewSystemHandler("1.2.3")
		h.AddCheck("database", func(context.Context) error { return nil })
		h.AddCheck("cache", func(context.Context) error { return errors.New("connection refused") })

		code, body := runHealth(t, h)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.False(t, body.Success)
		assert.Equal(t, "degraded", body.Data.Status)
		assert.Equal(t, "connection refused", body.Data.Checks["cache"])
		assert.Equal(t, "ok", body.Data.Checks["database"])
		assert.Nil(t, body.Data.Events)
	})
}
