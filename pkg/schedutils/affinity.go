package schedutils

import (
	"errors"
	"fmt"
	"syscall"
)

// MaxCPUs probes the kernel for its affinity mask width, in bits. The
// result is never cached: CPUs may get hot-plugged between two calls.
//
// Starting with the configured width, a sched_getaffinity probe is doubled
// in size for as long as the kernel rejects it with EINVAL (buffer smaller
// than its cpumask). The number of bytes the kernel copies on success is its
// mask width.
func (c *Client) MaxCPUs() (int, error) {
	bits := c.startBits
	for {
		set, err := NewCPUSet(bits)
		if err != nil {
			return 0, err
		}
		n, err := c.sys.SchedGetaffinity(0, set)
		if err == nil {
			c.log().Debug("Discovered affinity mask width", "bits", n*8, "probe_bits", set.Len())
			return n * 8, nil
		}
		if !errors.Is(err, syscall.EINVAL) || set.Len() >= c.limitBits {
			return 0, newOSError("sched_getaffinity", err)
		}
		c.log().Debug("Affinity mask probe too small, doubling", "probe_bits", set.Len())
		bits = set.Len() * 2
	}
}

// GetAffinity returns the CPUs the process or thread pid may run on, in
// ascending order. A pid of 0 means the calling thread; make sure to have
// the OS thread locked to the calling goroutine in that case.
func (c *Client) GetAffinity(pid int) ([]int, error) {
	maxCPUs, err := c.MaxCPUs()
	if err != nil {
		return nil, err
	}
	set, err := NewCPUSet(maxCPUs)
	if err != nil {
		return nil, err
	}
	if _, err := c.sys.SchedGetaffinity(pid, set); err != nil {
		return nil, newOSError(fmt.Sprintf("sched_getaffinity(%d)", pid), err)
	}
	return set.CPUs(), nil
}

// SetAffinity restricts pid to the given CPUs. CPUs outside the kernel's
// mask width are rejected with ErrInvalidArgument before the kernel is
// called, so the affinity of pid stays untouched in that case.
func (c *Client) SetAffinity(pid int, cpus []int) error {
	maxCPUs, err := c.MaxCPUs()
	if err != nil {
		return err
	}
	set, err := CPUSetFromCPUs(cpus, maxCPUs)
	if err != nil {
		return err
	}
	if err := c.sys.SchedSetaffinity(pid, set); err != nil {
		return newOSError(fmt.Sprintf("sched_setaffinity(%d)", pid), err)
	}
	c.log().Debug("Set affinity", "pid", pid, "cpus", cpus)
	return nil
}
