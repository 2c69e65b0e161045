package config

const (
	DefaultFallbackPath  = "/var/vcap/data/nfs-test"
	DefaultListen        = "8080"
	DefaultInstanceIndex = "0"
	DefaultSharedFile    = "test-data.txt"

	EnvServiceBindings = "VCAP_SERVICES"
	EnvInstanceIndex   = "CF_INSTANCE_INDEX"
	EnvPort            = "PORT"
)

// DefaultBindings lists the service labels searched for a volume mount, in order.
var DefaultBindings = []string{"nfs", "nfs-volume"}

// Settings is the content of the optional *.hcl files in the config dir.
// String values may reference environment variables using "ENV:NAME".
type Settings struct {
	Listen        string   `hcl:"listen"`
	FallbackPath  string   `hcl:"fallbackPath"`
	Bindings      []string `hcl:"bindings"`
	SharedFile    string   `hcl:"sharedFile"`
	InstanceIndex string   `hcl:"instanceIndex"`
	WaitForMount  string   `hcl:"waitForMount"`
}

// Runtime is resolved once on startup and never changes afterwards.
type Runtime struct {
	VolumePath         string `json:"volumePath"`
	InstanceIndex      string `json:"instanceIndex"`
	BindingsConfigured bool   `json:"bindingsConfigured"`
	Listen             string `json:"listen"`
	SharedFile         string `json:"sharedFile"`
}

// VolumeMount is a single entry of a service instance's "volume_mounts".
type VolumeMount struct {
	ContainerDir string `json:"container_dir"`
	Mode         string `json:"mode,omitempty"`
	DeviceType   string `json:"device_type,omitempty"`
}

// ServiceInstance is one bound service instance as found in VCAP_SERVICES.
type ServiceInstance struct {
	Name         string        `json:"name"`
	Label        string        `json:"label"`
	VolumeMounts []VolumeMount `json:"volume_mounts"`
}

// ServiceBindings maps a service label to its bound instances.
type ServiceBindings map[string][]ServiceInstance
