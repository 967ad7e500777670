// Package schedutils exposes the Linux process scheduling primitives: CPU
// affinity masks, scheduling policy and static priority.
//
// Affinity masks are sized dynamically. The kernel's mask width depends on
// the number of CPUs it was configured for, including offline and
// hot-pluggable ones, so every affinity call first probes the width the
// kernel accepts instead of relying on the fixed 1024 bit unix.CPUSet.
package schedutils

import (
	"log/slog"
)

const (
	// DefaultProbeStartBits is the mask width the CPU count discovery starts
	// probing with.
	DefaultProbeStartBits = 2048
	// DefaultProbeLimitBits is the width at which the discovery gives up.
	DefaultProbeLimitBits = 1 << 20
)

// Client issues scheduler calls through a SystemOps implementation. It holds
// no state besides its options and is safe for concurrent use.
type Client struct {
	sys       SystemOps
	startBits int
	limitBits int
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSystemOps replaces the kernel interface, mostly useful for tests.
func WithSystemOps(sys SystemOps) Option {
	return func(c *Client) {
		c.sys = sys
	}
}

// WithProbeBounds sets the start and limit widths (in bits) for the CPU count
// discovery. Non-positive values keep the defaults.
func WithProbeBounds(startBits, limitBits int) Option {
	return func(c *Client) {
		if startBits > 0 {
			c.startBits = startBits
		}
		if limitBits > 0 {
			c.limitBits = limitBits
		}
	}
}

// WithLogger sets the logger; by default slog.Default() at call time.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new Client.
func New(opts ...Option) *Client {
	c := &Client{
		sys:       newSystemOps(),
		startBits: DefaultProbeStartBits,
		limitBits: DefaultProbeLimitBits,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

var std = New()

// MaxCPUs returns the CPU affinity mask width of the running kernel.
func MaxCPUs() (int, error) { return std.MaxCPUs() }

// GetAffinity returns the CPUs the process or thread pid may run on, in
// ascending order. A pid of 0 means the calling thread.
func GetAffinity(pid int) ([]int, error) { return std.GetAffinity(pid) }

// SetAffinity restricts pid to the given CPUs.
func SetAffinity(pid int, cpus []int) error { return std.SetAffinity(pid, cpus) }

// GetScheduler returns the scheduling policy of pid.
func GetScheduler(pid int) (Policy, error) { return std.GetScheduler(pid) }

// SetScheduler sets the scheduling policy and static priority of pid.
func SetScheduler(pid int, policy Policy, priority int) error {
	return std.SetScheduler(pid, policy, priority)
}

// GetPriority returns the static priority of pid.
func GetPriority(pid int) (int, error) { return std.GetPriority(pid) }

// GetPriorityMin returns the lowest static priority valid for policy.
func GetPriorityMin(policy Policy) (int, error) { return std.GetPriorityMin(policy) }

// GetPriorityMax returns the highest static priority valid for policy.
func GetPriorityMax(policy Policy) (int, error) { return std.GetPriorityMax(policy) }

// GetPriorityBounds returns the valid static priority range for policy.
func GetPriorityBounds(policy Policy) (lo, hi int, err error) {
	return std.GetPriorityBounds(policy)
}
