package schedutils

import "fmt"

// GetScheduler returns the scheduling policy of pid, including the
// reset-on-fork flag if set.
func (c *Client) GetScheduler(pid int) (Policy, error) {
	policy, err := c.sys.SchedGetscheduler(pid)
	if err != nil {
		return 0, newOSError(fmt.Sprintf("sched_getscheduler(%d)", pid), err)
	}
	return Policy(policy), nil
}

// SetScheduler sets the scheduling policy and static priority of pid.
func (c *Client) SetScheduler(pid int, policy Policy, priority int) error {
	if err := c.sys.SchedSetscheduler(pid, int(policy), priority); err != nil {
		return newOSError(fmt.Sprintf("sched_setscheduler(%d)", pid), err)
	}
	c.log().Debug("Set scheduler", "pid", pid, "policy", policy, "priority", priority)
	return nil
}

// GetPriority returns the static priority of pid, or -1 if the kernel did
// not report one.
func (c *Client) GetPriority(pid int) (int, error) {
	prio, err := c.sys.SchedGetparam(pid)
	if err != nil {
		return -1, newOSError(fmt.Sprintf("sched_getparam(%d)", pid), err)
	}
	return prio, nil
}

// GetPriorityMin returns the lowest static priority valid for policy.
func (c *Client) GetPriorityMin(policy Policy) (int, error) {
	prio, err := c.sys.SchedGetPriorityMin(int(policy))
	if err != nil {
		return -1, newOSError(fmt.Sprintf("sched_get_priority_min(%d)", int(policy)), err)
	}
	return prio, nil
}

// GetPriorityMax returns the highest static priority valid for policy.
func (c *Client) GetPriorityMax(policy Policy) (int, error) {
	prio, err := c.sys.SchedGetPriorityMax(int(policy))
	if err != nil {
		return -1, newOSError(fmt.Sprintf("sched_get_priority_max(%d)", int(policy)), err)
	}
	return prio, nil
}

// GetPriorityBounds returns the valid static priority range for policy.
func (c *Client) GetPriorityBounds(policy Policy) (lo, hi int, err error) {
	if lo, err = c.GetPriorityMin(policy); err != nil {
		return -1, -1, err
	}
	if hi, err = c.GetPriorityMax(policy); err != nil {
		return -1, -1, err
	}
	return lo, hi, nil
}
