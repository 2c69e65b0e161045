package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/mittwald/volumeprobe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unixClient(socket string) *http.Client {
	return &http.Client{Transport: &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, "unix", socket)
		},
	}}
}

func startServeVolume(t *testing.T, rt *config.Runtime, wait time.Duration, pidPath string) (context.CancelFunc, <-chan error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveVolume(ctx, rt, wait, pidPath)
	}()
	t.Cleanup(cancel)
	return cancel, done
}

func awaitStop(t *testing.T, done <-chan error) error {
	t.Helper()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("serveVolume did not return")
		return nil
	}
}

func TestServeVolumeHoldsPidFileWhileServing(t *testing.T) {
	run := t.TempDir()
	socket := filepath.Join(run, "probe.sock")
	pidPath := filepath.Join(run, "volumeprobe.pid")
	rt := &config.Runtime{VolumePath: t.TempDir(), InstanceIndex: "0", Listen: "unix://" + socket}

	cancel, done := startServeVolume(t, rt, 0, pidPath)

	client := unixClient(socket)
	require.Eventually(t, func() bool {
		res, err := client.Get("http://unix/")
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	content, err := os.ReadFile(pidPath)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(content))

	cancel()
	require.NoError(t, awaitStop(t, done))
	assert.NoFileExists(t, pidPath)
}

func TestServeVolumeServesAfterMountWaitTimesOut(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "probe.sock")
	rt := &config.Runtime{VolumePath: filepath.Join(t.TempDir(), "missing"), InstanceIndex: "0", Listen: "unix://" + socket}

	cancel, done := startServeVolume(t, rt, 50*time.Millisecond, "")

	client := unixClient(socket)
	require.Eventually(t, func() bool {
		res, err := client.Get("http://unix/")
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, awaitStop(t, done))
}

func TestServeVolumeStopsWhileWaitingForMount(t *testing.T) {
	run := t.TempDir()
	pidPath := filepath.Join(run, "volumeprobe.pid")
	rt := &config.Runtime{VolumePath: filepath.Join(run, "missing"), InstanceIndex: "0", Listen: "unix://" + filepath.Join(run, "probe.sock")}

	cancel, done := startServeVolume(t, rt, time.Hour, pidPath)
	time.Sleep(20 * time.Millisecond)
	cancel()

	require.NoError(t, awaitStop(t, done))
	assert.NoFileExists(t, pidPath)
	assert.NoFileExists(t, filepath.Join(run, "probe.sock"))
}

func TestServeVolumeFailsWhenPidFileIsHeld(t *testing.T) {
	run := t.TempDir()
	pidPath := filepath.Join(run, "volumeprobe.pid")
	require.NoError(t, os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0o644))
	rt := &config.Runtime{VolumePath: t.TempDir(), InstanceIndex: "0", Listen: "unix://" + filepath.Join(run, "probe.sock")}

	_, done := startServeVolume(t, rt, 0, pidPath)

	assert.ErrorContains(t, awaitStop(t, done), "failed to acquire pid file")
	assert.FileExists(t, pidPath)
}

func TestMountWait(t *testing.T) {
	t.Cleanup(func() { resetFlags(t, serve) })

	wait, err := mountWait(serve, &config.Settings{})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), wait)

	wait, err = mountWait(serve, &config.Settings{WaitForMount: "2s"})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, wait)

	_, err = mountWait(serve, &config.Settings{WaitForMount: "soon"})
	assert.ErrorContains(t, err, "invalid waitForMount duration")

	require.NoError(t, serve.ParseFlags([]string{"--wait-for-mount", "5s"}))
	wait, err = mountWait(serve, &config.Settings{WaitForMount: "2s"})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, wait)
}
