package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/mittwald/volumeprobe/internal/config"
	"github.com/mittwald/volumeprobe/pkg/api"
	"github.com/mittwald/volumeprobe/pkg/pidfile"
	"github.com/mittwald/volumeprobe/pkg/probe"
	"github.com/mittwald/volumeprobe/pkg/volume"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout   = 10 * time.Second
	mountPollInterval = time.Second
)

var (
	waitForMount time.Duration
	pidFile      string
)

func init() {
	rootCmd.AddCommand(serve)
	for _, c := range []*cobra.Command{rootCmd, serve} {
		c.Flags().DurationVarP(&waitForMount, "wait-for-mount", "w", 0, "wait up to this long for the volume to be mounted before serving (0 disables waiting)")
		c.Flags().StringVar(&pidFile, "pidfile", "", "write the process id of volumeprobe to this file")
	}
}

var serve = &cobra.Command{
	Use:   "serve",
	Short: "Resolve the volume and serve the probe api",
	Long:  "This sub-command resolves the volume mount from the service bindings and serves the probe api until it receives SIGINT or SIGTERM",
	Run: func(cmd *cobra.Command, args []string) {
		rt, settings, err := resolveRuntime(cmd)
		if err != nil {
			log.Fatalf("failed while trying to resolve the volume configuration, err: '%+v'", err)
		}

		wait, err := mountWait(cmd, settings)
		if err != nil {
			log.Fatal(err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		if err := serveVolume(ctx, rt, wait, pidFile); err != nil {
			log.WithError(err).Fatal("volume probe api stopped with error")
		}
		log.Info("volume probe api stopped without error")
	},
}

// mountWait returns the --wait-for-mount flag, or the waitForMount setting
// when the flag was not given.
func mountWait(cmd *cobra.Command, settings *config.Settings) (time.Duration, error) {
	if cmd.Flags().Changed("wait-for-mount") || settings.WaitForMount == "" {
		return waitForMount, nil
	}

	wait, err := time.ParseDuration(settings.WaitForMount)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid waitForMount duration %q", settings.WaitForMount)
	}
	return wait, nil
}

// serveVolume serves the probe api for rt until ctx is done. A volume that is
// still missing after wait is logged and served anyway.
func serveVolume(ctx context.Context, rt *config.Runtime, wait time.Duration, pidPath string) error {
	v := volume.New(rt)
	log.WithFields(log.Fields{
		"volumePath": rt.VolumePath,
		"instance":   rt.InstanceIndex,
		"bindings":   rt.BindingsConfigured,
		"mounted":    v.Exists(),
	}).Info("volume probe configured")

	if wait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, wait)
		err := probe.Wait(waitCtx, "volume", probe.NewMountProbe(rt.VolumePath), mountPollInterval)
		cancel()

		if ctx.Err() != nil {
			log.Info("interrupted while waiting for the volume")
			return nil
		}
		if err != nil {
			log.WithError(err).Warnf("volume %s is not mounted after %s; serving anyway", rt.VolumePath, wait)
		}
	}

	pidFileHandle := pidfile.New(pidPath)
	if err := pidFileHandle.Acquire(); err != nil {
		return errors.Wrap(err, "failed to acquire pid file")
	}

	server := api.NewVolumeApi(rt.Listen, v)

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		log.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("failed to shut down volume probe api")
		}
	}()

	serveErr := server.Start()

	if err := pidFileHandle.Release(); err != nil {
		log.WithError(err).Warn("failed to release pid file")
	}

	return serveErr
}
