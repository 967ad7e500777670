//go:build linux

package schedutils

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// schedParam mirrors struct sched_param from <sched.h>.
type schedParam struct {
	priority int32
}

type defaultSystemOps struct{}

func newSystemOps() SystemOps {
	return defaultSystemOps{}
}

// We don't use unix.SchedGetaffinity as it is tied to the fixed size
// unix.CPUSet. None of the sched_* calls block, so RawSyscall is fine.
func (defaultSystemOps) SchedGetaffinity(pid int, set CPUSet) (int, error) {
	if len(set) == 0 {
		return 0, unix.EINVAL
	}
	n, _, e := unix.RawSyscall(unix.SYS_SCHED_GETAFFINITY,
		uintptr(pid), uintptr(set.Bytes()), uintptr(unsafe.Pointer(&set[0])))
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

func (defaultSystemOps) SchedSetaffinity(pid int, set CPUSet) error {
	if len(set) == 0 {
		return unix.EINVAL
	}
	_, _, e := unix.RawSyscall(unix.SYS_SCHED_SETAFFINITY,
		uintptr(pid), uintptr(set.Bytes()), uintptr(unsafe.Pointer(&set[0])))
	if e != 0 {
		return e
	}
	return nil
}

func (defaultSystemOps) SchedGetscheduler(pid int) (int, error) {
	policy, _, e := unix.RawSyscall(unix.SYS_SCHED_GETSCHEDULER, uintptr(pid), 0, 0)
	if e != 0 {
		return -1, e
	}
	return int(policy), nil
}

func (defaultSystemOps) SchedSetscheduler(pid int, policy int, priority int) error {
	param := schedParam{priority: int32(priority)}
	_, _, e := unix.RawSyscall(unix.SYS_SCHED_SETSCHEDULER,
		uintptr(pid), uintptr(policy), uintptr(unsafe.Pointer(&param)))
	if e != 0 {
		return e
	}
	return nil
}

func (defaultSystemOps) SchedGetparam(pid int) (int, error) {
	param := schedParam{priority: -1}
	_, _, e := unix.RawSyscall(unix.SYS_SCHED_GETPARAM, uintptr(pid), uintptr(unsafe.Pointer(&param)), 0)
	if e != 0 {
		return -1, e
	}
	return int(param.priority), nil
}

func (defaultSystemOps) SchedGetPriorityMin(policy int) (int, error) {
	prio, _, e := unix.RawSyscall(unix.SYS_SCHED_GET_PRIORITY_MIN, uintptr(policy), 0, 0)
	if e != 0 {
		return -1, e
	}
	return int(prio), nil
}

func (defaultSystemOps) SchedGetPriorityMax(policy int) (int, error) {
	prio, _, e := unix.RawSyscall(unix.SYS_SCHED_GET_PRIORITY_MAX, uintptr(policy), 0, 0)
	if e != 0 {
		return -1, e
	}
	return int(prio), nil
}
