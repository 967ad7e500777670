package schedutils

// SystemOps is the raw kernel interface used by Client. Each method maps to
// exactly one syscall and returns the bare errno on failure; Client turns
// these into OSErrors.
//
// The Linux implementation lives in sysops_linux.go, a stub for other
// platforms in sysops_other.go.
type SystemOps interface {
	// SchedGetaffinity fills set and returns the number of bytes the kernel
	// copied into it.
	SchedGetaffinity(pid int, set CPUSet) (int, error)
	SchedSetaffinity(pid int, set CPUSet) error
	SchedGetscheduler(pid int) (int, error)
	SchedSetscheduler(pid int, policy int, priority int) error
	// SchedGetparam returns the static priority, or -1 if the kernel left
	// it untouched.
	SchedGetparam(pid int) (int, error)
	SchedGetPriorityMin(policy int) (int, error)
	SchedGetPriorityMax(policy int) (int, error)
}
