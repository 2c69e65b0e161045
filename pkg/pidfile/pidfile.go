package pidfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// PIDFile records the process id of a running probe service so that two
// services on the same host cannot serve the same socket or config twice.
type PIDFile struct {
	path string
	file *os.File
}

func New(path string) *PIDFile {
	return &PIDFile{
		path: path,
	}
}

// Acquire creates the pid file. A file left behind by a process that no longer
// runs is replaced; one owned by a live process is an error.
func (f *PIDFile) Acquire() error {
	if f.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create pid file directory %q", filepath.Dir(f.path))
	}

	for {
		file, err := os.OpenFile(f.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if os.IsExist(err) {
			if err := f.removeIfStale(); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "failed to open pid file %q", f.path)
		}

		if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
			_ = file.Close()
			return errors.Wrapf(err, "failed to write pid to pid file %q", f.path)
		}

		f.file = file
		log.WithFields(log.Fields{"kind": "pidfile", "path": f.path}).Info("acquired pid file")
		return nil
	}
}

func (f *PIDFile) removeIfStale() error {
	content, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read pid file %q", f.path)
	}

	// the owner creates the file before writing its pid
	if strings.TrimSpace(string(content)) == "" {
		return fmt.Errorf("pid file %q is held by a process that is still starting up", f.path)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return errors.Wrapf(err, "failed to parse pid file %q", f.path)
	}

	if processAlive(pid) {
		return fmt.Errorf("pid file %q already exists and contains the PID of a running process", f.path)
	}

	log.WithFields(log.Fields{"kind": "pidfile", "path": f.path, "pid": pid}).
		Info("existing pid file contains the PID of a non-running process; removing it")

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove pid file %q", f.path)
	}
	return nil
}

func (f *PIDFile) Release() error {
	if f.path == "" || f.file == nil {
		return nil
	}

	if err := f.file.Close(); err != nil {
		return errors.Wrapf(err, "failed to close pid file %q", f.path)
	}
	f.file = nil

	if err := os.Remove(f.path); err != nil {
		return errors.Wrapf(err, "failed to remove pid file %q", f.path)
	}

	log.WithFields(log.Fields{"kind": "pidfile", "path": f.path}).Info("released pid file")
	return nil
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
