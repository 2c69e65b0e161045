package volume

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// appendExclusive appends data to path while holding an exclusive flock, so
// concurrent writers sharing the volume never interleave partial records.
func appendExclusive(path string, data []byte) error {
	return withExclusiveLock(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, func(f *os.File) error {
		if _, err := f.Write(data); err != nil {
			return errors.Wrapf(err, "failed to append to %s", path)
		}
		return nil
	})
}

// replaceExclusive truncates path only after the lock is held.
func replaceExclusive(path string, data []byte) error {
	return withExclusiveLock(path, os.O_CREATE|os.O_WRONLY, func(f *os.File) error {
		if err := f.Truncate(0); err != nil {
			return errors.Wrapf(err, "failed to truncate %s", path)
		}
		if _, err := f.WriteAt(data, 0); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		return nil
	})
}

func withExclusiveLock(path string, flag int, fn func(f *os.File) error) (err error) {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "failed to close %s", path)
		}
	}()

	fd := int(f.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX); err != nil {
		return errors.Wrapf(err, "failed to lock %s", path)
	}
	defer func() {
		if err := unix.Flock(fd, unix.LOCK_UN); err != nil {
			log.WithFields(log.Fields{"kind": "volume", "file": path}).WithError(err).Warn("failed to release lock")
		}
	}()

	return fn(f)
}
