package probe

type Probe interface {
	Exec() error
}
