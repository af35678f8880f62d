package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iwtcode/haasAdapter/internal/config"
	domain "github.com/iwtcode/haasAdapter/internal/domain/models"
	"github.com/iwtcode/haasAdapter/internal/middleware/logging"
	"github.com/iwtcode/haasAdapter/internal/middleware/swagger"
	"github.com/iwtcode/haasAdapter/models"
	apperrors "github.com/iwtcode/haasAdapter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecases struct {
	mu        sync.Mutex
	status    models.MachineStatus
	snapshot  models.MachineSnapshot
	readErr   error
	variables map[int]models.VariableReading
	startErr  error
	stopErr   error
	started   time.Duration
	calls     int
}

func (f *fakeUsecases) GetMachineStatus() (models.MachineStatus, error) {
	if f.readErr != nil {
		return models.StatusOffline, f.readErr
	}
	return f.status, nil
}

func (f *fakeUsecases) GetMachineData() (models.MachineSnapshot, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.readErr != nil {
		return models.EmptySnapshot(), f.readErr
	}
	return f.snapshot, nil
}

func (f *fakeUsecases) GetVariable(v int) (models.VariableReading, error) {
	if f.readErr != nil {
		return models.VariableReading{}, f.readErr
	}
	if r, ok := f.variables[v]; ok {
		return r, nil
	}
	return models.VariableReading{Variable: v}, nil
}

func (f *fakeUsecases) StartPolling(interval time.Duration) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = interval
	return nil
}

func (f *fakeUsecases) StopPolling() error {
	return f.stopErr
}

func (f *fakeUsecases) Health() domain.HealthResponse {
	return domain.HealthResponse{Status: "ok", MachineID: "/dev/ttyUSB0"}
}

func onlineSnapshot() models.MachineSnapshot {
	snapshot := models.OfflineSnapshot()
	snapshot.Status = models.StatusOnline
	snapshot.Mode = models.Some(models.ModeAutomatic)
	snapshot.TotalPartCount = 8
	snapshot.AxisPositions.X = models.Some(12.5)
	return snapshot
}

func newTestRouter(u *fakeUsecases) http.Handler {
	logger := logging.NewLogger(&logging.Config{Enabled: false}, "test")
	h := NewHandler(u, logger)
	return ProvideRouter(h, &config.AppConfig{GinMode: gin.TestMode}, &swagger.Config{Enabled: false})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestGetMachineStatus(t *testing.T) {
	router := newTestRouter(&fakeUsecases{status: models.StatusOnline})

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/haas/machine/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Online", body["machine_status"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestGetMachineStatusTransportFailure(t *testing.T) {
	router := newTestRouter(&fakeUsecases{readErr: fmt.Errorf("open: %w", apperrors.ErrConnection)})

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/haas/machine/status", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Offline", body["machine_status"])
	assert.Equal(t, "error", body["status"])
}

func TestGetMachineData(t *testing.T) {
	router := newTestRouter(&fakeUsecases{snapshot: onlineSnapshot()})

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/haas/machine/data", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, "Online", data["status"])
	assert.Equal(t, "AUTOMATIC", data["mode"])
	assert.Equal(t, "NA", data["power_on_time"])
	assert.Equal(t, -1.0, data["current_tool_number"])
	assert.Equal(t, 8.0, data["total_part_count"])
	assert.Equal(t, 12.5, data["axis_positions"].(map[string]any)["X"])
}

func TestGetMachineDataAssemblyFailure(t *testing.T) {
	router := newTestRouter(&fakeUsecases{readErr: fmt.Errorf("%w: boom", apperrors.ErrAssembly)})

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/haas/machine/data", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Offline", data["status"])
	assert.Equal(t, -1.0, data["spindle_speed"])
}

func TestGetVariable(t *testing.T) {
	router := newTestRouter(&fakeUsecases{variables: map[int]models.VariableReading{
		5041: {Variable: 5041, Value: "12.500", Available: true},
	}})

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/haas/machine/variables/5041", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"variable": 5041.0, "value": "12.500", "available": true}, body["variable"])

	for _, bad := range []string{"abc", "0", "-3"} {
		w, body = doRequest(t, router, http.MethodGet, "/api/v1/haas/machine/variables/"+bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.Equal(t, "error", body["status"])
	}
}

func TestGetVariableTransportError(t *testing.T) {
	router := newTestRouter(&fakeUsecases{readErr: apperrors.ErrTransport})

	w, _ := doRequest(t, router, http.MethodGet, "/api/v1/haas/machine/variables/100", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPollingEndpoints(t *testing.T) {
	u := &fakeUsecases{}
	router := newTestRouter(u)

	w, _ := doRequest(t, router, http.MethodPost, "/api/v1/haas/polling/start", `{"interval": 2500}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2500*time.Millisecond, u.started)

	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/haas/polling/start", `{"interval": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	u.startErr = apperrors.ErrCollectorRunning
	w, body := doRequest(t, router, http.MethodPost, "/api/v1/haas/polling/start", `{"interval": 1000}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, body["error"].(map[string]any)["message"], "already running")

	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/haas/polling/stop", "")
	assert.Equal(t, http.StatusOK, w.Code)

	u.stopErr = apperrors.ErrCollectorNotRunning
	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/haas/polling/stop", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHealth(t *testing.T) {
	w, body := doRequest(t, newTestRouter(&fakeUsecases{}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "/dev/ttyUSB0", body["machine_id"])
}

func TestToAppError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, toAppError(apperrors.ErrInvalidVariable).Code)
	assert.Equal(t, http.StatusServiceUnavailable, toAppError(fmt.Errorf("x: %w", apperrors.ErrTimeout)).Code)
	assert.Equal(t, http.StatusConflict, toAppError(apperrors.ErrCollectorNotRunning).Code)

	internal := toAppError(fmt.Errorf("unexpected"))
	assert.Equal(t, http.StatusInternalServerError, internal.Code)
	assert.False(t, internal.IsUserFacing)
}

func TestParseInterval(t *testing.T) {
	cases := []struct {
		url  string
		want time.Duration
	}{
		{"/stream", defaultInterval},
		{"/stream?interval=2s", 2 * time.Second},
		{"/stream?interval_ms=1500", 1500 * time.Millisecond},
		{"/stream?interval=5m", defaultInterval},
		{"/stream?interval_ms=120000", defaultInterval},
		{"/stream?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}
	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tc.url, nil)
			assert.Equal(t, tc.want, parseInterval(c))
		})
	}
}

func TestStreamMachineData(t *testing.T) {
	u := &fakeUsecases{snapshot: onlineSnapshot()}
	srv := httptest.NewServer(newTestRouter(u))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/haas/machine/stream?interval_ms=20"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	for i := 0; i < 2; i++ {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg struct {
			Type string         `json:"type"`
			Data map[string]any `json:"data"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "snapshot", msg.Type)
		assert.Equal(t, "Online", msg.Data["status"])
	}
}

func TestStreamReportsCollectionErrors(t *testing.T) {
	u := &fakeUsecases{readErr: fmt.Errorf("%w: boom", apperrors.ErrAssembly)}
	srv := httptest.NewServer(newTestRouter(u))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/haas/machine/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg streamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "snapshot assembly failed")
}
