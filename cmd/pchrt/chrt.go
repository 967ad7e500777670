package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/egandro/schedutils/pkg/executor"
	"github.com/egandro/schedutils/pkg/schedutils"
)

// scheduler is the part of schedutils.Client pchrt needs.
type scheduler interface {
	GetScheduler(pid int) (schedutils.Policy, error)
	SetScheduler(pid int, policy schedutils.Policy, priority int) error
	GetPriority(pid int) (int, error)
	GetPriorityBounds(policy schedutils.Policy) (int, int, error)
}

type chrt struct {
	sched scheduler
	exec  executor.Executor
	out   io.Writer
}

// policyDisplayName includes the reset-on-fork flag, as chrt(1) does.
func policyDisplayName(p schedutils.Policy) string {
	name := schedutils.PolicyName(p)
	if p.ResetOnFork() {
		name += "|SCHED_RESET_ON_FORK"
	}
	return name
}

func (c *chrt) showPriorityLimits() error {
	for _, p := range schedutils.Policies() {
		lo, hi, err := c.sched.GetPriorityBounds(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%-32.32s: %d/%d\n", schedutils.PolicyName(p)+" min/max priority", lo, hi)
	}
	return nil
}

func (c *chrt) showSettings(pid int, which string) error {
	policy, err := c.sched.GetScheduler(pid)
	if err != nil {
		return err
	}
	prio, err := c.sched.GetPriority(pid)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "pid %d's %s scheduling policy: %s\n", pid, which, policyDisplayName(policy))
	fmt.Fprintf(c.out, "pid %d's %s scheduling priority: %d\n", pid, which, prio)
	return nil
}

func (c *chrt) checkPriority(policy schedutils.Policy, prio int) error {
	lo, hi, err := c.sched.GetPriorityBounds(policy &^ schedutils.SchedResetOnFork)
	if err != nil {
		return err
	}
	if prio < lo || prio > hi {
		return fmt.Errorf("unsupported priority value for the policy: %d (see --max for valid range)", prio)
	}
	return nil
}

func (c *chrt) changeSettings(pid int, policy schedutils.Policy, prio int) error {
	if err := c.checkPriority(policy, prio); err != nil {
		return err
	}
	if err := c.sched.SetScheduler(pid, policy, prio); err != nil {
		fmt.Fprintf(c.out, "sched_setscheduler: %v\n", kernelError(err))
		return fmt.Errorf("failed to set pid %d's policy", pid)
	}
	return nil
}

// run sets the policy on the calling thread and then replaces the process
// with the command. The thread stays locked, so execve(2) runs on the very
// thread whose policy got changed.
func (c *chrt) run(policy schedutils.Policy, prio int, argv []string) error {
	runtime.LockOSThread()
	if err := c.changeSettings(0, policy, prio); err != nil {
		return err
	}
	path, err := c.exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("failed to execute %s: %w", argv[0], err)
	}
	if err := c.exec.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("failed to execute %s: %w", argv[0], err)
	}
	return nil
}

// kernelError strips the operation from an OSError, leaving the errno text.
func kernelError(err error) error {
	var oserr *schedutils.OSError
	if errors.As(err, &oserr) {
		return oserr.Err
	}
	return err
}

func parsePriority(s string) (int, error) {
	prio, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid priority argument: %q", s)
	}
	return prio, nil
}

func parsePid(s string) (int, error) {
	pid, err := strconv.Atoi(s)
	if err != nil || pid < 0 {
		return 0, fmt.Errorf("invalid PID argument: %q", s)
	}
	return pid, nil
}
