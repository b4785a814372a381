// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package server_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcedestination/saidb/internal/graphfile"
	"github.com/sourcedestination/saidb/internal/server"
	"github.com/sourcedestination/saidb/internal/store/sqlite"
	"github.com/sourcedestination/saidb/internal/store/sqlstore"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

func openStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	s, err := sqlite.Open(context.Background(), sqlite.Config{
		Path:       filepath.Join(t.TempDir(), "graphs.db"),
		Initialize: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestServer(t *testing.T) (*server.Server, *sqlstore.Store) {
	t.Helper()
	st := openStore(t)
	srv, err := server.New(server.Config{ListenAddr: "127.0.0.1:0"}, st)
	require.NoError(t, err)
	return srv, st
}

func do(t *testing.T, srv *server.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

const triangle = `{
  "features": [{"name": "color", "value": "red"}],
  "nodes": [
    {"id": 1, "features": [{"name": "label", "value": "a"}]},
    {"id": 2},
    {"id": 3}
  ],
  "edges": [
    {"id": 1, "from": 1, "to": 2, "features": [{"name": "weight", "value": "3"}]},
    {"id": 2, "from": 2, "to": 3},
    {"id": 3, "from": 3, "to": 1}
  ]
}`

type idBody struct {
	ID int64 `json:"id"`
}

type idsBody struct {
	IDs  []int64 `json:"ids"`
	Next *int64  `json:"next"`
}

func addGraph(t *testing.T, srv *server.Server, body string) int64 {
	t.Helper()
	w := do(t, srv, http.MethodPost, "/api/v1/graphs", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[idBody](t, w).ID
}

func TestServer_New_Validation(t *testing.T) {
	st := openStore(t)

	_, err := server.New(server.Config{}, st)
	require.Error(t, err)
	assert.True(t, saierr.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "listen address is required")

	_, err = server.New(server.Config{ListenAddr: "127.0.0.1:0"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph store is required")

	_, err = server.New(server.Config{ListenAddr: "127.0.0.1:0", CORSOrigins: []string{"*"}}, st)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORS origin")
}

func TestServer_HealthEndpoint(t *testing.T) {
	srv, st := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "sqlite", body["backend"])
	assert.Equal(t, true, body["available"])

	require.NoError(t, st.Close())

	w = do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body = decode[map[string]any](t, w)
	assert.Equal(t, false, body["available"])
	assert.EqualValues(t, 1, body["failure_count"])
	assert.NotEmpty(t, body["last_failure_at"])
}

func TestServer_SecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestServer_CORS(t *testing.T) {
	st := openStore(t)
	srv, err := server.New(server.Config{
		ListenAddr:  "127.0.0.1:0",
		CORSOrigins: []string{"https://app.example.com"},
	}, st)
	require.NoError(t, err)

	preflight := func(origin string) string {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/graphs", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", "GET")
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		return w.Header().Get("Access-Control-Allow-Origin")
	}

	assert.Equal(t, "https://app.example.com", preflight("https://app.example.com"))
	assert.Empty(t, preflight("https://evil.example.com"))
}

func TestServer_OpenAPISpec(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, op := range []string{"add-graph", "list-graphs", "get-graph", "delete-graph", "search-graphs", "store-stats"} {
		assert.Contains(t, body, op)
	}
}

func TestServer_AddAndGetGraph(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/v1/graphs", triangle)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[idBody](t, w).ID
	assert.Positive(t, id)
	assert.Equal(t, "/api/v1/graphs/1", w.Header().Get("Location"))

	w = do(t, srv, http.MethodGet, "/api/v1/graphs/1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var want graphfile.Document
	require.NoError(t, json.Unmarshal([]byte(triangle), &want))
	assert.Equal(t, want, decode[graphfile.Document](t, w))
}

func TestServer_AddGraph_Rejections(t *testing.T) {
	srv, st := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{
			name:   "dangling edge",
			body:   `{"nodes": [{"id": 1}], "edges": [{"id": 1, "from": 1, "to": 9}]}`,
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "duplicate node",
			body:   `{"nodes": [{"id": 1}, {"id": 1}]}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "duplicate edge",
			body:   `{"nodes": [{"id": 1}], "edges": [{"id": 1, "from": 1, "to": 1}, {"id": 1, "from": 1, "to": 1}]}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "feature too long",
			body:   `{"features": [{"name": "n", "value": "` + strings.Repeat("x", 300) + `"}], "nodes": []}`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/api/v1/graphs", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	n, err := st.CountGraphs(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "rejected graphs must leave no rows")
}

func TestServer_GetGraph_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/v1/graphs/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_DeleteGraph(t *testing.T) {
	srv, _ := newTestServer(t)
	id := addGraph(t, srv, triangle)
	path := "/api/v1/graphs/" + jsonInt(id)

	w := do(t, srv, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, srv, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_ListGraphs_Pages(t *testing.T) {
	srv, _ := newTestServer(t)
	var want []int64
	for range 5 {
		want = append(want, addGraph(t, srv, `{"nodes": [{"id": 1}]}`))
	}

	var got []int64
	after := int64(0)
	for pages := 0; ; pages++ {
		require.Less(t, pages, 10)
		w := do(t, srv, http.MethodGet, "/api/v1/graphs?limit=2&after="+jsonInt(after), "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		page := decode[idsBody](t, w)
		got = append(got, page.IDs...)
		if page.Next == nil {
			break
		}
		after = *page.Next
	}
	assert.Equal(t, want, got)

	w := do(t, srv, http.MethodGet, "/api/v1/graphs?limit=5000", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestServer_ListGraphs_Empty(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/v1/graphs", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[idsBody](t, w)
	assert.NotNil(t, page.IDs)
	assert.Empty(t, page.IDs)
	assert.Nil(t, page.Next)
}

func TestServer_Search(t *testing.T) {
	srv, _ := newTestServer(t)
	g1 := addGraph(t, srv, `{"features": [{"name": "color", "value": "red"}], "nodes": []}`)
	g2 := addGraph(t, srv, `{"nodes": [{"id": 1, "features": [{"name": "color", "value": "red"}]}]}`)
	g3 := addGraph(t, srv, `{"nodes": [{"id": 1}], "edges": [{"id": 1, "from": 1, "to": 1, "features": [{"name": "color", "value": ""}]}]}`)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"name and value", "name=color&value=red", []int64{g1, g2}},
		{"name only", "name=color", []int64{g1, g2, g3}},
		{"explicit empty value", "name=color&value=", []int64{g3}},
		{"no match", "name=shape", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodGet, "/api/v1/search?"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.want, decode[idsBody](t, w).IDs)
		})
	}

	w := do(t, srv, http.MethodGet, "/api/v1/search", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "name is required")
}

func TestServer_Stats(t *testing.T) {
	srv, _ := newTestServer(t)
	addGraph(t, srv, triangle)
	addGraph(t, srv, `{"nodes": [{"id": 7}]}`)

	w := do(t, srv, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Backend    string `json:"backend"`
		Graphs     int64  `json:"graphs"`
		Nodes      int64  `json:"nodes"`
		Edges      int64  `json:"edges"`
		Statements struct {
			TotalQueries int64 `json:"total_queries"`
			TotalExecs   int64 `json:"total_execs"`
		} `json:"statements"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "sqlite", body.Backend)
	assert.EqualValues(t, 2, body.Graphs)
	assert.EqualValues(t, 4, body.Nodes)
	assert.EqualValues(t, 3, body.Edges)
	assert.Positive(t, body.Statements.TotalExecs)
	assert.Positive(t, body.Statements.TotalQueries)
}

func TestServer_StoreUnavailable(t *testing.T) {
	srv, st := newTestServer(t)
	require.NoError(t, st.Close())

	w := do(t, srv, http.MethodGet, "/api/v1/stats", "")
	assert.GreaterOrEqual(t, w.Code, http.StatusInternalServerError)
}

func TestServer_GracefulShutdown(t *testing.T) {
	srv, _ := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down within timeout")
	}
}

func TestServer_Start_BadAddress(t *testing.T) {
	st := openStore(t)
	srv, err := server.New(server.Config{ListenAddr: "256.0.0.1:99999"}, st)
	require.NoError(t, err)

	err = srv.Start(context.Background())
	require.Error(t, err)
	assert.True(t, saierr.HasCode(err, saierr.CodeServerStartFailure))
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
