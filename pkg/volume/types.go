package volume

const (
	NoSharedData        = "No shared data yet"
	DefaultMessage      = "test"
	BindingsConfigured  = "configured"
	BindingsNotDeclared = "not configured"
)

type Status struct {
	AppInstance  string `json:"app_instance"`
	Hostname     string `json:"hostname"`
	VolumePath   string `json:"volume_path"`
	VolumeExists bool   `json:"volume_exists"`
	VcapServices string `json:"vcap_services"`
	GoVersion    string `json:"go_version"`
}

type WrittenFiles struct {
	Shared   string `json:"shared"`
	Instance string `json:"instance"`
}

type WriteResult struct {
	Success bool         `json:"success"`
	Wrote   string       `json:"wrote"`
	Files   WrittenFiles `json:"files"`
}

type SharedState struct {
	VolumePath    string   `json:"volume_path"`
	FilesInVolume []string `json:"files_in_volume"`
	SharedData    string   `json:"shared_data"`
	Instance      string   `json:"instance"`
}

type FileInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

type FileList struct {
	VolumePath string     `json:"volume_path"`
	FileCount  int        `json:"file_count"`
	Files      []FileInfo `json:"files"`
}
