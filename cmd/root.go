package cmd

import (
	"net"
	"net/http"
	"net/http/pprof"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const envPrefix = "VOLUMEPROBE"

var (
	configDir     string
	enableProfile bool
	listen        string
	fallbackPath  string
	instanceIndex string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", "", "set directory to where your optional .hcl-configs are located")
	rootCmd.PersistentFlags().BoolVar(&enableProfile, "profile", false, "enable pprof http server")
	rootCmd.PersistentFlags().StringVarP(&listen, "listen", "l", "", "port, host:port or unix:// socket to listen on (default $PORT or 8080)")
	rootCmd.PersistentFlags().StringVar(&fallbackPath, "fallback-path", "", "volume path used when no nfs service binding is found (default \"/var/vcap/data/nfs-test\")")
	rootCmd.PersistentFlags().StringVar(&instanceIndex, "instance-index", "", "instance identity (default $CF_INSTANCE_INDEX or 0)")
}

var rootCmd = &cobra.Command{
	Use:     "volumeprobe",
	Short:   "Volumeprobe - smoke test for shared network volumes",
	Long:    "Volumeprobe serves a small HTTP api that reports on, writes to and lists a shared volume mounted into all instances of an app",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setFlagsFromEnv(cmd.Flags(), envPrefix); err != nil {
			return err
		}

		if enableProfile {
			go func() {
				mux := http.NewServeMux()
				mux.HandleFunc("/debug/pprof/", pprof.Index)
				mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
				mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
				mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
				mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

				listener, err := net.Listen("tcp", "127.0.0.1:0")
				if err != nil {
					log.Errorf("pprof server failed to listen: %v", err)
					return
				}
				log.Infof("Starting pprof server on http://%s/debug/pprof/", listener.Addr().String())
				if err := http.Serve(listener, mux); err != nil {
					log.Errorf("pprof server error: %v", err)
				}
			}()
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		serve.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
