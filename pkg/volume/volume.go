package volume

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mittwald/volumeprobe/internal/config"
	"github.com/pkg/errors"
)

// ErrNotMounted is returned by Write when the volume path is not a directory.
var ErrNotMounted = errors.New("Volume not mounted")

// Volume performs the probe operations against a mounted volume. All paths are
// fixed on construction.
type Volume struct {
	path               string
	instance           string
	sharedFile         string
	bindingsConfigured bool

	now      func() time.Time
	hostname func() (string, error)
}

func New(rt *config.Runtime) *Volume {
	sharedFile := rt.SharedFile
	if sharedFile == "" {
		sharedFile = config.DefaultSharedFile
	}

	return &Volume{
		path:               rt.VolumePath,
		instance:           rt.InstanceIndex,
		sharedFile:         sharedFile,
		bindingsConfigured: rt.BindingsConfigured,
		now:                time.Now,
		hostname:           os.Hostname,
	}
}

func (v *Volume) Path() string {
	return v.path
}

func (v *Volume) SharedFilePath() string {
	return filepath.Join(v.path, v.sharedFile)
}

func (v *Volume) InstanceFilePath() string {
	return filepath.Join(v.path, fmt.Sprintf("instance-%s.txt", v.instance))
}

// Exists reports whether the volume path currently is a directory.
func (v *Volume) Exists() bool {
	fi, err := os.Stat(v.path)
	return err == nil && fi.IsDir()
}

func (v *Volume) Status() *Status {
	hostname, err := v.hostname()
	if err != nil {
		hostname = "unknown"
	}

	vcap := BindingsNotDeclared
	if v.bindingsConfigured {
		vcap = BindingsConfigured
	}

	return &Status{
		AppInstance:  v.instance,
		Hostname:     hostname,
		VolumePath:   v.path,
		VolumeExists: v.Exists(),
		VcapServices: vcap,
		GoVersion:    runtime.Version(),
	}
}

// Write appends a record line to the shared file and replaces the instance
// file. Nothing is written if the volume is not mounted.
func (v *Volume) Write(message string) (*WriteResult, error) {
	message = normalizeMessage(message)
	timestamp := v.now().Format(time.RFC3339)
	line := fmt.Sprintf("[%s] Instance %s: %s\n", timestamp, v.instance, message)

	if !v.Exists() {
		return nil, ErrNotMounted
	}

	if err := appendExclusive(v.SharedFilePath(), []byte(line)); err != nil {
		return nil, err
	}

	content := fmt.Sprintf("Last write: %s\n%s", timestamp, message)
	if err := replaceExclusive(v.InstanceFilePath(), []byte(content)); err != nil {
		return nil, err
	}

	return &WriteResult{
		Success: true,
		Wrote:   line,
		Files: WrittenFiles{
			Shared:   v.SharedFilePath(),
			Instance: v.InstanceFilePath(),
		},
	}, nil
}

func (v *Volume) Read() (*SharedState, error) {
	names, err := v.entryNames()
	if err != nil {
		return nil, err
	}

	sharedData := NoSharedData
	content, err := os.ReadFile(v.SharedFilePath())
	switch {
	case err == nil:
		sharedData = string(content)
	case !os.IsNotExist(err):
		return nil, errors.Wrapf(err, "failed to read %s", v.SharedFilePath())
	}

	return &SharedState{
		VolumePath:    v.path,
		FilesInVolume: names,
		SharedData:    sharedData,
		Instance:      v.instance,
	}, nil
}

func (v *Volume) Files() (*FileList, error) {
	names, err := v.entryNames()
	if err != nil {
		return nil, err
	}

	files := make([]FileInfo, 0, len(names))
	for _, name := range names {
		fi, err := os.Stat(filepath.Join(v.path, name))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %s", name)
		}

		files = append(files, FileInfo{
			Name:     name,
			Size:     fi.Size(),
			Modified: fi.ModTime().Format(time.RFC3339),
		})
	}

	return &FileList{
		VolumePath: v.path,
		FileCount:  len(files),
		Files:      files,
	}, nil
}

func (v *Volume) entryNames() ([]string, error) {
	entries, err := os.ReadDir(v.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", v.path)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// normalizeMessage keeps each record on a single line.
func normalizeMessage(message string) string {
	if message == "" {
		return DefaultMessage
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(message)
}
