package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/stickies/pkg/board"
	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/storage"
	"tableflip.dev/stickies/pkg/views"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *board.Store, *storage.MemoryAdapter) {
	t.Helper()
	primary := storage.NewMemoryAdapter()
	store := board.New(primary, board.WithQuietPeriod(time.Hour))
	srv := New(store, WithClock(func() time.Time { return fixedNow }))
	t.Cleanup(srv.Close)
	return srv, store, primary
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateAndList(t *testing.T) {
	srv, store, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/notes", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[note.Note](t, rec)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, note.Yellow, created.Color)
	assert.Equal(t, 1, store.Len())

	rec = do(t, h, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]note.Note](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCreateRejectsUnknownColor(t *testing.T) {
	srv, store, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodPost, "/api/notes", `{"title":"x","color":"teal"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, store.Len())
}

func TestUnknownIDIs404(t *testing.T) {
	srv, _, _ := newTestServer(t)
	h := srv.Handler()
	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/notes/missing", ""},
		{http.MethodPatch, "/api/notes/missing", `{"title":"x"}`},
		{http.MethodDelete, "/api/notes/missing", ""},
		{http.MethodPut, "/api/notes/missing/progress", `{"progress":5}`},
	} {
		rec := do(t, h, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestProgressIsClamped(t *testing.T) {
	srv, store, _ := newTestServer(t)
	n := store.Add("a", "", "")

	rec := do(t, srv.Handler(), http.MethodPut, "/api/notes/"+n.ID+"/progress", `{"progress":150}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 100, decode[note.Note](t, rec).Progress)

	rec = do(t, srv.Handler(), http.MethodPut, "/api/notes/"+n.ID+"/progress", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchAndClearDeadline(t *testing.T) {
	srv, store, _ := newTestServer(t)
	n := store.Add("a", "", "")
	h := srv.Handler()

	rec := do(t, h, http.MethodPatch, "/api/notes/"+n.ID, `{"title":"  ","color":"pink","deadline":"2025-06-09T12:00:00Z","currentPage":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[note.Note](t, rec)
	assert.Equal(t, note.PlaceholderTitle, got.Title)
	assert.Equal(t, note.Pink, got.Color)
	assert.Equal(t, note.PageDetail, got.CurrentPage)
	require.NotNil(t, got.Deadline)

	rec = do(t, h, http.MethodGet, "/api/views/deadline", "")
	items := decode[[]views.DeadlineItem](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, views.StatusOverdue, items[0].Status)

	rec = do(t, h, http.MethodPatch, "/api/notes/"+n.ID, `{"deadline":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[note.Note](t, rec).Deadline)

	rec = do(t, h, http.MethodPatch, "/api/notes/"+n.ID, `{"deadline":"someday"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutDeadlinePositionAndPage(t *testing.T) {
	srv, store, _ := newTestServer(t)
	n := store.Add("a", "", "")
	h := srv.Handler()

	rec := do(t, h, http.MethodPut, "/api/notes/"+n.ID+"/deadline", `{"deadline":"2025-06-20"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, decode[note.Note](t, rec).Deadline)

	rec = do(t, h, http.MethodPut, "/api/notes/"+n.ID+"/deadline", `{"deadline":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[note.Note](t, rec).Deadline)

	rec = do(t, h, http.MethodPut, "/api/notes/"+n.ID+"/position", `{"x":400,"y":500}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, note.Position{X: 400, Y: 500}, decode[note.Note](t, rec).Position)

	rec = do(t, h, http.MethodPut, "/api/notes/"+n.ID+"/page", `{"page":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, note.PageDetail, decode[note.Note](t, rec).CurrentPage)
}

func TestDeleteArrangeAndStatus(t *testing.T) {
	srv, store, _ := newTestServer(t)
	a := store.Add("a", "", "")
	store.Add("b", "", "")
	h := srv.Handler()

	rec := do(t, h, http.MethodDelete, "/api/notes/"+a.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/arrange", "")
	require.Equal(t, http.StatusOK, rec.Code)
	notes := decode[[]note.Note](t, rec)
	require.Len(t, notes, 1)
	assert.Equal(t, note.Position{X: 50, Y: 50}, notes[0].Position)

	rec = do(t, h, http.MethodGet, "/api/status", "")
	status := decode[map[string]any](t, rec)
	assert.Equal(t, false, status["loading"])
	assert.Equal(t, float64(1), status["count"])
}

func TestViewsStatsAndReport(t *testing.T) {
	srv, store, _ := newTestServer(t)
	low := store.Add("low", "", "")
	high := store.Add("high", "", note.Green)
	store.UpdateProgress(high.ID, 100)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/api/views/progress", "")
	sorted := decode[[]note.Note](t, rec)
	require.Len(t, sorted, 2)
	assert.Equal(t, high.ID, sorted[0].ID)
	assert.Equal(t, low.ID, sorted[1].ID)

	rec = do(t, h, http.MethodGet, "/api/stats", "")
	st := decode[views.Stats](t, rec)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Completed)

	rec = do(t, h, http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/markdown"))
	assert.Contains(t, rec.Body.String(), "Generated: 2025-06-10 12:00")
}

func TestBackup(t *testing.T) {
	srv, store, primary := newTestServer(t)
	store.Add("a", "", "")

	rec := do(t, srv.Handler(), http.MethodPost, "/api/backup", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"ok": true}, decode[map[string]bool](t, rec))
	assert.Len(t, primary.Backups(context.Background()), 1)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, store, _ := newTestServer(t)
	store.Add("a", "", "")

	rec := do(t, srv.Handler(), http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stickies_mutations_total")
}

func TestWebsocketStreamsEvents(t *testing.T) {
	srv, store, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return srv.Hub().Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	n := store.Add("live", "", "")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev board.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, board.EventCreate, ev.Type)
	assert.Equal(t, n.ID, ev.ID)
}
