package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/egandro/schedutils/pkg/schedutils"
	"github.com/joho/godotenv"
)

const (
	ConstantConfigFilename = "/etc/default/schedutils"
	ConstantProcDir        = "/proc"

	// ConstantHotplugBatchWindow is the default time window to group CPU
	// hotplug events: after an event we wait this long for subsequent events
	// to arrive before probing the CPU count again.
	ConstantHotplugBatchWindow = 2 * time.Second

	DefaultLogLevel = "info"
	// DefaultPolicy is what pchrt uses when no policy option is given,
	// following chrt(1).
	DefaultPolicy = "SCHED_RR"

	DefaultProbeStartBits = schedutils.DefaultProbeStartBits
	DefaultProbeLimitBits = schedutils.DefaultProbeLimitBits
)

type Config struct {
	LogLevel           string
	DefaultPolicy      string
	ProbeStartBits     int
	ProbeLimitBits     int
	HotplugBatchWindow time.Duration
}

// Validate checks the probe bounds and the default policy.
func (c *Config) Validate() error {
	if c.ProbeStartBits <= 0 || c.ProbeLimitBits <= 0 {
		return fmt.Errorf("probe bounds must be positive (start=%d, limit=%d)", c.ProbeStartBits, c.ProbeLimitBits)
	}
	if c.ProbeStartBits > c.ProbeLimitBits {
		return fmt.Errorf("probe start %d exceeds probe limit %d", c.ProbeStartBits, c.ProbeLimitBits)
	}
	if c.ProbeLimitBits > schedutils.MaxSetBits {
		return fmt.Errorf("probe limit %d exceeds %d", c.ProbeLimitBits, schedutils.MaxSetBits)
	}
	if _, err := schedutils.PolicyFromName(c.DefaultPolicy); err != nil {
		return fmt.Errorf("default policy: %w", err)
	}
	if c.HotplugBatchWindow <= 0 {
		return fmt.Errorf("hotplug batch window must be positive, got %v", c.HotplugBatchWindow)
	}
	return nil
}

// Policy returns the configured default policy, SCHED_RR if it is invalid.
func (c *Config) Policy() schedutils.Policy {
	p, err := schedutils.PolicyFromName(c.DefaultPolicy)
	if err != nil {
		return schedutils.SchedRR
	}
	return p
}

// ClientOptions returns the schedutils options matching this configuration.
func (c *Config) ClientOptions() []schedutils.Option {
	return []schedutils.Option{
		schedutils.WithProbeBounds(c.ProbeStartBits, c.ProbeLimitBits),
	}
}

func Load(filename string) *Config {
	if filename == "" {
		filename = ConstantConfigFilename
	}
	_ = godotenv.Load(filename)

	return &Config{
		LogLevel:           getEnv("SCHEDUTILS_LOG_LEVEL", DefaultLogLevel),
		DefaultPolicy:      getEnv("SCHEDUTILS_DEFAULT_POLICY", DefaultPolicy),
		ProbeStartBits:     getEnvInt("SCHEDUTILS_PROBE_START_BITS", DefaultProbeStartBits),
		ProbeLimitBits:     getEnvInt("SCHEDUTILS_PROBE_LIMIT_BITS", DefaultProbeLimitBits),
		HotplugBatchWindow: time.Duration(getEnvInt("SCHEDUTILS_HOTPLUG_BATCH_WINDOW", int(ConstantHotplugBatchWindow/time.Second))) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
