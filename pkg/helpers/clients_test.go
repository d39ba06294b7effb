package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalClients_DisabledWhenUnconfigured(t *testing.T) {
	rdb, err := NewRedisClient(context.Background(), "", "", 0)
	require.NoError(t, err)
	assert.Nil(t, rdb)

	es, err := NewESClient(nil, "", "")
	require.NoError(t, err)
	assert.Nil(t, es)
}

func TestNewESClient_RetriesUnavailable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		user, pass, _ := r.BasicAuth()
		assert.Equal(t, "u", user)
		assert.Equal(t, "p", pass)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":{"number":"8.19.0"}}`))
	}))
	defer srv.Close()

	es, err := NewESClient([]string{srv.URL}, "u", "p")
	require.NoError(t, err)
	res, err := es.Info()
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}

func TestESBackoff(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, esBackoff(1))
	assert.Equal(t, 200*time.Millisecond, esBackoff(2))
	assert.Equal(t, 800*time.Millisecond, esBackoff(4))
	assert.Equal(t, time.Second, esBackoff(10))
}

func TestLogError_AddsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	LogError(logger, "store failed", errors.New("boom"), logrus.Fields{"op": "find"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "find", entry["op"])
	assert.Equal(t, "error", entry["level"])

	assert.NotPanics(t, func() { LogInfo(nil, "ignored", nil) })
}

func TestNewLogger_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("rituday", "development", "").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("rituday", "production", "").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("rituday", "production", "warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("rituday", "production", "loud").GetLevel())

	_, isJSON := NewLogger("rituday", "production", "").Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}
