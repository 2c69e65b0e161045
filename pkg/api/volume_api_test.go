package api_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mittwald/volumeprobe/internal/config"
	"github.com/mittwald/volumeprobe/pkg/api"
	"github.com/mittwald/volumeprobe/pkg/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, path string) http.Handler {
	t.Helper()

	v := volume.New(&config.Runtime{VolumePath: path, InstanceIndex: "1", BindingsConfigured: true})
	return api.NewVolumeApi(":0", v).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestStatusRoute(t *testing.T) {
	dir := t.TempDir()
	rec := do(t, newTestHandler(t, dir), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)

	assert.Equal(t, "1", body["app_instance"])
	assert.Equal(t, dir, body["volume_path"])
	assert.Equal(t, true, body["volume_exists"])
	assert.Equal(t, "configured", body["vcap_services"])
	assert.Contains(t, body, "hostname")
	assert.Contains(t, body, "go_version")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestStatusRouteNeverFails(t *testing.T) {
	rec := do(t, newTestHandler(t, filepath.Join(t.TempDir(), "missing")), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status volume.Status
	decode(t, rec, &status)
	assert.False(t, status.VolumeExists)
}

func TestWriteRoute(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandler(t, dir)

	rec := do(t, h, http.MethodPost, "/write", `{"message":"hello volume"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res volume.WriteResult
	decode(t, rec, &res)
	assert.True(t, res.Success)
	assert.True(t, strings.HasSuffix(res.Wrote, "Instance 1: hello volume\n"))
	assert.Equal(t, filepath.Join(dir, "test-data.txt"), res.Files.Shared)
	assert.Equal(t, filepath.Join(dir, "instance-1.txt"), res.Files.Instance)
}

func TestWriteRouteDefaultsMessage(t *testing.T) {
	for name, body := range map[string]string{
		"empty body":    "",
		"empty message": `{"message":""}`,
		"no message":    `{}`,
		"invalid json":  `{"message":`,
		"wrong type":    `{"message":42}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, newTestHandler(t, t.TempDir()), http.MethodPost, "/write", body)
			require.Equal(t, http.StatusOK, rec.Code)

			var res volume.WriteResult
			decode(t, rec, &res)
			assert.True(t, strings.HasSuffix(res.Wrote, ": test\n"), res.Wrote)
		})
	}
}

func TestWriteRouteRejectsOversizedBody(t *testing.T) {
	dir := t.TempDir()
	body, err := json.Marshal(&api.WriteRequest{Message: strings.Repeat("x", 1<<20)})
	require.NoError(t, err)

	rec := do(t, newTestHandler(t, dir), http.MethodPost, "/write", string(body))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var res api.ErrorResponse
	decode(t, rec, &res)
	assert.Equal(t, dir, res.Path)
	assert.Contains(t, res.Error, "too large")
	assert.NoFileExists(t, filepath.Join(dir, "test-data.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "instance-1.txt"))
}

func TestWriteRouteAcceptsBodyBelowLimit(t *testing.T) {
	dir := t.TempDir()
	message := strings.Repeat("y", 64<<10)
	body, err := json.Marshal(&api.WriteRequest{Message: message})
	require.NoError(t, err)

	rec := do(t, newTestHandler(t, dir), http.MethodPost, "/write", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var res volume.WriteResult
	decode(t, rec, &res)
	assert.True(t, strings.HasSuffix(res.Wrote, ": "+message+"\n"))
}

func TestWriteRouteWithoutMount(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	rec := do(t, newTestHandler(t, missing), http.MethodPost, "/write", `{"message":"x"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var res api.ErrorResponse
	decode(t, rec, &res)
	assert.Equal(t, api.ErrorResponse{Error: "Volume not mounted", Path: missing}, res)
	assert.NoDirExists(t, missing)
}

func TestWriteRouteReportsFilesystemError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "test-data.txt"), 0o755))

	rec := do(t, newTestHandler(t, dir), http.MethodPost, "/write", `{"message":"x"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var res api.ErrorResponse
	decode(t, rec, &res)
	assert.Equal(t, dir, res.Path)
	assert.Contains(t, res.Error, "is a directory")
}

func TestReadRoute(t *testing.T) {
	dir := t.TempDir()
	h := newTestHandler(t, dir)

	rec := do(t, h, http.MethodGet, "/read", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var before volume.SharedState
	decode(t, rec, &before)
	assert.Equal(t, "No shared data yet", before.SharedData)
	assert.Equal(t, []string{}, before.FilesInVolume)
	assert.Equal(t, "1", before.Instance)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/write", `{"message":"one"}`).Code)

	var after volume.SharedState
	decode(t, do(t, h, http.MethodGet, "/read", ""), &after)
	assert.Equal(t, []string{"instance-1.txt", "test-data.txt"}, after.FilesInVolume)
	assert.True(t, strings.HasSuffix(after.SharedData, "Instance 1: one\n"))
}

func TestReadRouteWithoutMount(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	rec := do(t, newTestHandler(t, missing), http.MethodGet, "/read", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var res api.ErrorResponse
	decode(t, rec, &res)
	assert.Equal(t, missing, res.Path)
	assert.Contains(t, res.Error, "no such file or directory")
}

func TestFilesRoute(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.bin"), make([]byte, 1234), 0o644))

	rec := do(t, newTestHandler(t, dir), http.MethodGet, "/files", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list volume.FileList
	decode(t, rec, &list)
	assert.Equal(t, dir, list.VolumePath)
	assert.Equal(t, 1, list.FileCount)
	require.Len(t, list.Files, 1)
	assert.Equal(t, "data.bin", list.Files[0].Name)
	assert.Equal(t, int64(1234), list.Files[0].Size)
	_, err := time.Parse(time.RFC3339, list.Files[0].Modified)
	assert.NoError(t, err)
}

func TestFilesRouteWithoutMount(t *testing.T) {
	rec := do(t, newTestHandler(t, filepath.Join(t.TempDir(), "missing")), http.MethodGet, "/files", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUnmatchedRoutes(t *testing.T) {
	h := newTestHandler(t, t.TempDir())

	cases := []struct{ method, target, body string }{
		{http.MethodGet, "/nope", ""},
		{http.MethodGet, "/write", ""},
		{http.MethodPost, "/", `{"message":"x"}`},
		{http.MethodPut, "/write", `{"message":"x"}`},
		{http.MethodDelete, "/files", ""},
		{http.MethodPost, "/read", "garbage"},
		{http.MethodGet, "/files/", ""},
		{http.MethodGet, "/write/extra", ""},
		{http.MethodGet, "//read", ""},
		{http.MethodPost, "//write", `{"message":"x"}`},
		{http.MethodPost, "/./write", `{"message":"x"}`},
		{http.MethodGet, "/read/../files", ""},
		{http.MethodGet, "/files/..", ""},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.target, tc.body)
			require.Equal(t, http.StatusNotFound, rec.Code)

			var res map[string]string
			decode(t, rec, &res)
			assert.Equal(t, map[string]string{"error": "Not found"}, res)
		})
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()

	newTestHandler(t, t.TempDir()).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestApiServesOnUnixSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "run", "probe.sock")
	v := volume.New(&config.Runtime{VolumePath: t.TempDir(), InstanceIndex: "0"})
	server := api.NewVolumeApi("unix://"+socket, v)

	done := make(chan error, 1)
	go func() {
		done <- server.Start()
	}()

	client := &http.Client{Transport: &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, "unix", socket)
		},
	}}

	var res *http.Response
	require.Eventually(t, func() bool {
		var err error
		res, err = client.Get("http://unix/")
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	require.NoError(t, server.Shutdown(context.Background()))
	assert.NoError(t, <-done)
}
