package helper

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

const envPrefix = "ENV:"

// ResolveEnvWith replaces values of the form "ENV:NAME" with the value lookup
// returns for NAME. Other values are returned unchanged.
func ResolveEnvWith(in string, lookup func(string) (string, bool)) string {
	if !strings.HasPrefix(in, envPrefix) {
		return in
	}
	v, _ := lookup(in[len(envPrefix):])
	return v
}

func SetDefaultStringIfEmpty(value, defaultValue, setting string) string {
	if len(value) == 0 {
		log.WithFields(log.Fields{"kind": "config", "setting": setting}).Debugf("no value specified, assuming default %q", defaultValue)
		return defaultValue
	}
	return value
}
