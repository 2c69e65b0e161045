package config

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ParseServiceBindings decodes a VCAP_SERVICES payload.
func ParseServiceBindings(payload string) (ServiceBindings, error) {
	bindings := ServiceBindings{}
	if err := json.Unmarshal([]byte(payload), &bindings); err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", EnvServiceBindings)
	}
	return bindings, nil
}

// ContainerDir returns the container dir of the first volume mount of the
// first instance bound under label. ok is false if the label is not bound.
func (b ServiceBindings) ContainerDir(label string) (dir string, ok bool) {
	instances, ok := b[label]
	if !ok || instances == nil {
		return "", false
	}

	if len(instances) == 0 || len(instances[0].VolumeMounts) == 0 {
		return "", true
	}

	return instances[0].VolumeMounts[0].ContainerDir, true
}

// ResolveVolumePath determines the mount path from a VCAP_SERVICES payload.
// The first bound label in labels wins; if it carries no container dir, or no
// label is bound, or the payload is empty, fallback is returned.
func ResolveVolumePath(payload string, labels []string, fallback string) (string, error) {
	if strings.TrimSpace(payload) == "" {
		return fallback, nil
	}

	bindings, err := ParseServiceBindings(payload)
	if err != nil {
		return "", err
	}

	for _, label := range labels {
		dir, ok := bindings.ContainerDir(label)
		if !ok {
			continue
		}
		if dir == "" {
			return fallback, nil
		}
		return dir, nil
	}

	return fallback, nil
}
