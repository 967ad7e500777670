//go:build !linux

package schedutils

// otherSystemOps is a stub for non-Linux platforms, every call fails.
type otherSystemOps struct{}

func newSystemOps() SystemOps {
	return otherSystemOps{}
}

func (otherSystemOps) SchedGetaffinity(pid int, set CPUSet) (int, error) {
	return 0, ErrNotSupported
}

func (otherSystemOps) SchedSetaffinity(pid int, set CPUSet) error {
	return ErrNotSupported
}

func (otherSystemOps) SchedGetscheduler(pid int) (int, error) {
	return -1, ErrNotSupported
}

func (otherSystemOps) SchedSetscheduler(pid int, policy int, priority int) error {
	return ErrNotSupported
}

func (otherSystemOps) SchedGetparam(pid int) (int, error) {
	return -1, ErrNotSupported
}

func (otherSystemOps) SchedGetPriorityMin(policy int) (int, error) {
	return -1, ErrNotSupported
}

func (otherSystemOps) SchedGetPriorityMax(policy int) (int, error) {
	return -1, ErrNotSupported
}
