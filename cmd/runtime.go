package cmd

import (
	"github.com/mittwald/volumeprobe/internal/config"
	"github.com/spf13/cobra"
)

// resolveRuntime merges, in increasing precedence, the defaults, the .hcl
// files in --config-dir, the platform environment and explicit flags.
func resolveRuntime(cmd *cobra.Command) (*config.Runtime, *config.Settings, error) {
	settings := &config.Settings{}
	if err := settings.GenerateFromConfigDir(configDir); err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("fallback-path") {
		settings.FallbackPath = fallbackPath
	}

	rt, err := config.ResolveFromEnv(settings)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("listen") {
		rt.Listen = config.ListenAddress(listen)
	}
	if cmd.Flags().Changed("instance-index") {
		rt.InstanceIndex = instanceIndex
	}

	return rt, settings, nil
}
