package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/prodboard/internal/aggregator"
	"github.com/alexanderramin/prodboard/internal/db"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/alexanderramin/prodboard/internal/service"
	"github.com/alexanderramin/prodboard/internal/testutil"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var apiToday = time.Date(2025, time.November, 10, 9, 0, 0, 0, time.UTC)

type server struct {
	db     *sql.DB
	bus    *provider.Bus
	hub    *Hub
	router *mux.Router
	audit  *bytes.Buffer
}

func newServer(t *testing.T) *server {
	t.Helper()
	database := testutil.NewSeededDB(t, apiToday)
	p := provider.NewSQLProvider(database, db.DriverSQLite)
	bus := provider.NewBus()
	cache := provider.NewCachingFetcher(p, bus)
	hub := NewHub(slog.New(slog.DiscardHandler))
	audit := &bytes.Buffer{}
	observer := service.NewLogMutationObserver(slog.New(slog.NewTextHandler(audit, nil)))

	deps := Deps{
		Fetcher:      cache,
		Aggregator:   aggregator.New(cache, nil),
		Moves:        service.NewMoveService(p, bus, nil, observer),
		Statuses:     service.NewStatusService(p, bus, nil, nil, observer),
		Hub:          hub,
		Pinger:       database,
		Clock:        func() time.Time { return apiToday },
		DaysBack:     4,
		DaysForward:  7,
		IssuedStatus: "Issued",
	}
	return &server{db: database, bus: bus, hub: hub, router: NewRouter(deps, nil), audit: audit}
}

func (s *server) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)
	return w
}

func decodeBoard(t *testing.T, w *httptest.ResponseRecorder) BoardResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp BoardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestBoard_Grid(t *testing.T) {
	s := newServer(t)

	resp := decodeBoard(t, s.do(t, http.MethodGet, "/api/board?pivot=2025-11-10&width=1200", ""))
	assert.Equal(t, "2025-11-06", resp.Start)
	assert.Equal(t, "2025-11-17", resp.End)
	assert.Equal(t, 4, resp.Layout.ColumnsPerRow)
	require.Len(t, resp.Rows, 3)

	first := resp.Rows[0][0]
	assert.Equal(t, "06.11.2025", first.Key)
	assert.True(t, first.AllIssued)
	require.Len(t, first.Orders, 1)
	assert.Equal(t, "F-100", first.Orders[0].Name)
	assert.Equal(t, "1.25", first.Orders[0].Area.String())
	assert.Len(t, first.Orders[0].Stages, 5)
	assert.NotEmpty(t, first.Orders[0].Details, "detailed mode includes details")

	today := resp.Rows[1][0]
	assert.True(t, today.Today)
	assert.False(t, today.AllIssued)
	assert.Empty(t, resp.Warnings)
}

func TestBoard_ModeAndScale(t *testing.T) {
	s := newServer(t)

	resp := decodeBoard(t, s.do(t, http.MethodGet, "/api/board?width=1200&scale=0.7&mode=compact", ""))
	assert.Equal(t, 6, resp.Layout.ColumnsPerRow)
	assert.Empty(t, resp.Rows[0][0].Orders[0].Details)

	brief := decodeBoard(t, s.do(t, http.MethodGet, "/api/board?width=1200&scale=0.7&mode=brief", ""))
	assert.Equal(t, 4, brief.Layout.ColumnsPerRow, "brief mode ignores scale")
	assert.Equal(t, 1.0, brief.Layout.Scale)
}

func TestBoard_BadParams(t *testing.T) {
	s := newServer(t)

	for _, q := range []string{"pivot=tomorrow", "width=wide", "scale=3", "mode=poster"} {
		w := s.do(t, http.MethodGet, "/api/board?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestMove_PersistsAndRefreshes(t *testing.T) {
	s := newServer(t)
	before := decodeBoard(t, s.do(t, http.MethodGet, "/api/board?width=1200", ""))
	require.Len(t, before.Rows[0][0].Orders, 1)

	w := s.do(t, http.MethodPost, "/api/orders/1/move", `{"from":"06.11.2025","to":"2025-11-07"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"state":"succeeded"`)

	after := decodeBoard(t, s.do(t, http.MethodGet, "/api/board?width=1200", ""))
	assert.Empty(t, after.Rows[0][0].Orders, "cache dropped by invalidation")
	assert.Len(t, after.Rows[0][1].Orders, 2)
}

func TestMove_GestureReachesMutationLog(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/orders/1/move",
		`{"to":"2025-11-07","gesture":"6f1c2a52-9a4e-4c1b-8d1f-3b2f0e7c9a10"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, s.audit.String(), "gesture=6f1c2a52-9a4e-4c1b-8d1f-3b2f0e7c9a10")

	s.audit.Reset()
	w = s.do(t, http.MethodPost, "/api/orders/1/status", `{"field":"payment_status","status_id":2,"status_name":"Prepaid"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, s.audit.String(), "gesture=", "a gesture is minted when the client sends none")

	w = s.do(t, http.MethodPost, "/api/orders/1/move", `{"to":"2025-11-08","gesture":"drag-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid gesture id")
}

func TestMove_SameDayAndErrors(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/orders/1/move", `{"to":"06.11.2025"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"idle"`)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/orders/999/move", `{"to":"07.11.2025"}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/orders/abc/move", `{"to":"07.11.2025"}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/orders/1/move", `{"to":"later"}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/orders/1/move", `not json`).Code)
}

func TestStatus_Update(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/orders/5/status", `{"field":"production_status","status_id":2,"status_name":"Cutting"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var statusID, auto int
	require.NoError(t, s.db.QueryRow(`SELECT production_status_id, production_status_auto FROM orders WHERE id = 5`).Scan(&statusID, &auto))
	assert.Equal(t, 2, statusID)
	assert.Zero(t, auto)

	w = s.do(t, http.MethodPost, "/api/orders/5/status", `{"field":"shipping","status_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown status field")
}

func TestRecovery(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Recovery(slog.New(slog.DiscardHandler)))
	r.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), ErrCodeInternal)
}

func TestWebsocket_PushesInvalidations(t *testing.T) {
	s := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.hub.Run(ctx)
	defer s.hub.Relay(s.bus)()

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Post(srv.URL+"/api/orders/2/move", "application/json", strings.NewReader(`{"to":"2025-11-15"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "invalidate", msg.Type)
	assert.Equal(t, provider.ResourceOrders, msg.Resource)
}

func TestRefreshScheduler(t *testing.T) {
	_, err := NewRefreshScheduler("every now and then", &testutil.RecordingInvalidator{}, slog.New(slog.DiscardHandler))
	assert.Error(t, err)

	inv := &testutil.RecordingInvalidator{}
	s, err := NewRefreshScheduler("@every 1h", inv, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	s.tick()
	assert.Equal(t, aggregator.FeedResources, inv.Resource)

	s.Start()
	s.Stop()
}
