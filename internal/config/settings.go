package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// GenerateFromConfigDir merges all *.hcl files found below configDir into s,
// in lexical order. An empty configDir leaves s untouched.
func (s *Settings) GenerateFromConfigDir(configDir string) error {
	if configDir == "" {
		return nil
	}

	configDir = strings.TrimRight(configDir, "/")

	matches, err := findFilesInPath(configDir)
	if err != nil {
		return err
	}

	for _, m := range matches {
		log.Infof("found config file: %s", m)

		contents, err := os.ReadFile(m)
		if err != nil {
			return errors.Wrapf(err, "could not read configuration file %s", m)
		}

		if err := hcl.Unmarshal(contents, s); err != nil {
			return errors.Wrapf(err, "could not parse configuration file %s", m)
		}
	}

	return nil
}
