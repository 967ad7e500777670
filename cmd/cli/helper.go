package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/egandro/schedutils/pkg/config"
	"github.com/egandro/schedutils/pkg/schedutils"
)

// schedClient is the part of schedutils.Client the CLI needs.
type schedClient interface {
	MaxCPUs() (int, error)
	GetAffinity(pid int) ([]int, error)
	GetScheduler(pid int) (schedutils.Policy, error)
	GetPriority(pid int) (int, error)
	GetPriorityBounds(policy schedutils.Policy) (int, int, error)
}

func isNumeric(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

func pidArg(args []string) (int, error) {
	if len(args) != 1 || !isNumeric(args[0]) {
		return 0, errors.New("expected exactly one numeric PID argument")
	}
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid PID: %s", args[0])
	}
	return pid, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func getCPUModelName(path string) string {
	if path == "" {
		path = filepath.Join(config.ConstantProcDir, "cpuinfo")
	}
	// #nosec G304 -- path is either /proc/cpuinfo or a test file
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "Unknown CPU"
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, "model name") {
			parts := strings.Split(line, ":")
			if len(parts) > 1 {
				return strings.TrimSpace(parts[1])
			}
		}
	}
	return "Unknown CPU"
}
