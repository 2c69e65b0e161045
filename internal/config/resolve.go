package config

import (
	"net"
	"os"
	"strings"

	"github.com/mittwald/volumeprobe/internal/helper"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ResolveFromEnv is Resolve using the process environment.
func ResolveFromEnv(s *Settings) (*Runtime, error) {
	return Resolve(s, os.LookupEnv)
}

// Resolve builds the runtime configuration. Platform variables (PORT,
// CF_INSTANCE_INDEX, VCAP_SERVICES) take precedence over values in s.
func Resolve(s *Settings, lookup LookupFunc) (*Runtime, error) {
	resolveEnv := func(in string) string {
		return helper.ResolveEnvWith(in, lookup)
	}

	bindings := s.Bindings
	if len(bindings) == 0 {
		bindings = DefaultBindings
	}
	fallback := helper.SetDefaultStringIfEmpty(resolveEnv(s.FallbackPath), DefaultFallbackPath, "fallbackPath")

	payload, configured := lookup(EnvServiceBindings)
	configured = configured && payload != ""

	volumePath, err := ResolveVolumePath(payload, bindings, fallback)
	if err != nil {
		return nil, err
	}

	instance := resolveEnv(s.InstanceIndex)
	if v, ok := lookup(EnvInstanceIndex); ok && v != "" {
		instance = v
	}

	listen := resolveEnv(s.Listen)
	if v, ok := lookup(EnvPort); ok && v != "" {
		listen = v
	}

	return &Runtime{
		VolumePath:         volumePath,
		InstanceIndex:      helper.SetDefaultStringIfEmpty(instance, DefaultInstanceIndex, "instanceIndex"),
		BindingsConfigured: configured,
		Listen:             ListenAddress(helper.SetDefaultStringIfEmpty(listen, DefaultListen, "listen")),
		SharedFile:         helper.SetDefaultStringIfEmpty(resolveEnv(s.SharedFile), DefaultSharedFile, "sharedFile"),
	}, nil
}

// ListenAddress turns a bare port into a listen address. Host:port pairs and
// unix:// socket addresses are returned unchanged.
func ListenAddress(listen string) string {
	if strings.HasPrefix(listen, "unix://") {
		return listen
	}
	if _, _, err := net.SplitHostPort(listen); err == nil {
		return listen
	}
	return ":" + listen
}
