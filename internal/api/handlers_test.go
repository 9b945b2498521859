package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lei/anc-web-api/internal/controller"
	"github.com/lei/anc-web-api/internal/models"
	"github.com/lei/anc-web-api/pkg/logger"
)

func newTestRouter(t *testing.T, values ValuesService) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))
	router := NewRouter(NewHandlers(values), NewLoggingMiddleware(log), RouterOptions{})
	return router, logs
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, controller.NewValuesController())

	w := doGet(t, router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetValue(t *testing.T) {
	router, _ := newTestRouter(t, controller.NewValuesController())

	tests := []struct {
		name string
		path string
		want string
	}{
		{"one", "/api/values/1", `{"value":"value 1"}`},
		{"zero", "/api/values/0", `{"value":"value 0"}`},
		{"negative", "/api/values/-4", `{"value":"value -4"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(t, router, tt.path)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestGetDealStatus(t *testing.T) {
	router, _ := newTestRouter(t, controller.NewValuesController())

	for _, id := range []string{"1", "3", "9", "30"} {
		t.Run(id, func(t *testing.T) {
			w := doGet(t, router, "/api/values/"+id+"/dealstatus")
			require.Equal(t, http.StatusOK, w.Code)

			var resp models.DealStatusResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Status.IsValid(), "unexpected status %q", resp.Status)
		})
	}

	w := doGet(t, router, "/api/values/30/dealstatus")
	assert.JSONEq(t, `{"id":30,"status":"shipped"}`, w.Body.String())
}

func TestInvalidID(t *testing.T) {
	router, logs := newTestRouter(t, controller.NewValuesController())

	for _, path := range []string{"/api/values/abc", "/api/values/1.5/dealstatus", "/api/values/99999999999999999999"} {
		t.Run(path, func(t *testing.T) {
			w := doGet(t, router, path)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Error struct {
					Message   string `json:"message"`
					Code      int    `json:"code"`
					RequestID string `json:"request_id"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "invalid id", resp.Error.Message)
			assert.Equal(t, http.StatusBadRequest, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)
			assert.Equal(t, resp.Error.RequestID, w.Header().Get("X-Request-ID"))
		})
	}

	assert.Equal(t, 3, logs.FilterMessage("invalid id").Len())
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t, controller.NewValuesController())

	assert.Equal(t, http.StatusNotFound, doGet(t, router, "/api/values").Code)
	assert.Equal(t, http.StatusNotFound, doGet(t, router, "/api/deals/1").Code)

	req := httptest.NewRequest(http.MethodPost, "/api/values/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRequestIDPropagated(t *testing.T) {
	router, _ := newTestRouter(t, controller.NewValuesController())

	req := httptest.NewRequest(http.MethodGet, "/api/values/7", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t, controller.NewValuesController())

	req := httptest.NewRequest(http.MethodOptions, "/api/values/1", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

type panickingValues struct{}

func (panickingValues) Get(int) models.ValueResult { panic("boom") }
func (panickingValues) GetDealStatus(int) models.DealStatus { panic("boom") }

func TestPanicRecovered(t *testing.T) {
	router, logs := newTestRouter(t, panickingValues{})

	w := doGet(t, router, "/api/values/1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, zapcore.ErrorLevel, completed[0].Level)
}
