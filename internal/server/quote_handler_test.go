package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"podpricer/internal/config"
	"podpricer/internal/notify"
	"podpricer/internal/pricing"
	"podpricer/pkg/redis"
)

// newTestServer builds a server with a real engine, a disabled notifier
// and a cache pointing at a closed port: cache misses and failed rate-limit
// counters both degrade to plain computation, which is what these tests
// exercise. Persistence paths need Postgres and are covered elsewhere.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()

	engine, err := pricing.NewEngine(pricing.DefaultTable(), logger)
	require.NoError(t, err)

	notifier, err := notify.New(config.AdminConfig{}, logger)
	require.NoError(t, err)

	cache := redis.New("127.0.0.1:1", "", 0, time.Minute)
	t.Cleanup(cache.Close)

	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Addr:            ":0",
			RequestTimeout:  time.Second,
			ShutdownTimeout: time.Second,
			QuoteRateLimit:  100,
			QuoteRateWindow: time.Minute,
		},
	}

	return New(engine, nil, cache, nil, notifier, cfg, logger)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	w := doRequest(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandlePricingTable(t *testing.T) {
	w := doRequest(t, newTestServer(t), http.MethodGet, "/api/v1/pricing/table", "")
	require.Equal(t, http.StatusOK, w.Code)

	var table pricing.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Equal(t, "KRW", table.Currency)
	assert.NoError(t, table.Validate())
}

func TestHandleCreateQuote(t *testing.T) {
	body := `{
		"quantity": 50,
		"design": {
			"id": "design-1",
			"version": 1,
			"sides": [
				{
					"id": "front",
					"name": "Front",
					"printArea": {"width": 2000, "height": 2400},
					"widthMM": 500,
					"objects": [
						{"id": "text-1", "kind": "text", "bounds": {"width": 200, "height": 100}, "printMethod": "embroidery"}
					]
				},
				{"id": "back", "name": "Back", "printArea": {"width": 2000, "height": 2400}, "objects": []}
			]
		}
	}`

	w := doRequest(t, newTestServer(t), http.MethodPost, "/api/v1/quotes", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Zero(t, resp.QuoteID)
	assert.Equal(t, int64(60000), resp.Summary.Total)
	require.Len(t, resp.Summary.Sides, 2)
	assert.True(t, resp.Summary.Sides[0].HasObjects)
	assert.False(t, resp.Summary.Sides[1].HasObjects)
	assert.Equal(t, int64(0), resp.Summary.Sides[1].AdditionalPrice)
}

func TestHandleCreateQuote_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"missing design", `{"quantity": 1}`},
		{"structurally invalid design", `{"quantity": 1, "design": {"id": "", "sides": []}}`},
		{"unknown object kind", `{"quantity": 1, "design": {"id": "d", "sides": [{"id": "front", "objects": [{"id": "a", "kind": "gif"}]}]}}`},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, srv, http.MethodPost, "/api/v1/quotes", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleGetQuote_InvalidID(t *testing.T) {
	w := doRequest(t, newTestServer(t), http.MethodGet, "/api/v1/quotes/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
