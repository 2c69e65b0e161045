package probe

import (
	"os"

	"github.com/pkg/errors"
)

// MountProbe succeeds once path is a readable directory.
type MountProbe struct {
	path string
}

func NewMountProbe(path string) *MountProbe {
	return &MountProbe{path: path}
}

func (m *MountProbe) Exec() error {
	fi, err := os.Stat(m.path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return errors.Errorf("%s is not a directory", m.path)
	}

	_, err = os.ReadDir(m.path)
	return err
}
