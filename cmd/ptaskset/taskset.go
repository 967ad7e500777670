package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"

	"github.com/egandro/schedutils/pkg/config"
	"github.com/egandro/schedutils/pkg/cpulist"
	"github.com/egandro/schedutils/pkg/executor"
)

// affinity is the part of schedutils.Client ptaskset needs.
type affinity interface {
	MaxCPUs() (int, error)
	GetAffinity(pid int) ([]int, error)
	SetAffinity(pid int, cpus []int) error
}

// TaskAffinity is the --json representation of one task's affinity.
type TaskAffinity struct {
	PID  int    `json:"pid"`
	List string `json:"list"`
	Mask string `json:"mask"`
	CPUs []int  `json:"cpus"`
}

type taskset struct {
	aff     affinity
	exec    executor.Executor
	out     io.Writer
	procDir string

	listFormat bool
}

func (t *taskset) format(cpus []int) string {
	if t.listFormat {
		return cpulist.Format(cpus)
	}
	return cpulist.FormatMask(cpus)
}

func (t *taskset) parse(s string) ([]int, error) {
	if t.listFormat {
		maxCPUs, err := t.aff.MaxCPUs()
		if err != nil {
			return nil, err
		}
		cpus, err := cpulist.ParseLimit([]byte(s), maxCPUs)
		if err != nil {
			return nil, fmt.Errorf("failed to parse CPU list: %s: %w", s, err)
		}
		return cpus, nil
	}
	cpus, err := cpulist.ParseMask(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CPU mask: %s: %w", s, err)
	}
	return cpus, nil
}

func (t *taskset) kind() string {
	if t.listFormat {
		return "list"
	}
	return "mask"
}

// tasks returns the thread ids of pid, or just pid unless all is set.
func (t *taskset) tasks(pid int, all bool) ([]int, error) {
	if !all {
		return []int{pid}, nil
	}
	procDir := t.procDir
	if procDir == "" {
		procDir = config.ConstantProcDir
	}
	entries, err := os.ReadDir(filepath.Join(procDir, strconv.Itoa(pid), "task"))
	if err != nil {
		return nil, fmt.Errorf("failed to read process threads for pid %d: %w", pid, err)
	}
	var tids []int
	for _, e := range entries {
		if tid, err := strconv.Atoi(e.Name()); err == nil {
			tids = append(tids, tid)
		}
	}
	sort.Ints(tids)
	return tids, nil
}

func (t *taskset) showAffinity(pid int, which string) error {
	cpus, err := t.aff.GetAffinity(pid)
	if err != nil {
		return fmt.Errorf("failed to get pid %d's affinity: %w", pid, err)
	}
	fmt.Fprintf(t.out, "pid %d's %s affinity %s: %s\n", pid, which, t.kind(), t.format(cpus))
	return nil
}

func (t *taskset) showJSON(tids []int) error {
	result := make([]TaskAffinity, 0, len(tids))
	for _, tid := range tids {
		cpus, err := t.aff.GetAffinity(tid)
		if err != nil {
			return fmt.Errorf("failed to get pid %d's affinity: %w", tid, err)
		}
		result = append(result, TaskAffinity{
			PID:  tid,
			List: cpulist.Format(cpus),
			Mask: cpulist.FormatMask(cpus),
			CPUs: cpus,
		})
	}
	enc := json.NewEncoder(t.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// changeAffinity applies cpus to every tid, printing the current and new
// affinity of each.
func (t *taskset) changeAffinity(tids []int, cpus []int, progress func(done, total int)) error {
	for idx, tid := range tids {
		if err := t.showAffinity(tid, "current"); err != nil {
			return err
		}
		if err := t.aff.SetAffinity(tid, cpus); err != nil {
			return fmt.Errorf("failed to set pid %d's affinity: %w", tid, err)
		}
		if err := t.showAffinity(tid, "new"); err != nil {
			return err
		}
		if progress != nil {
			progress(idx+1, len(tids))
		}
	}
	return nil
}

// run pins the calling thread and replaces the process with the command.
// The thread stays locked so the new program starts on the pinned thread.
func (t *taskset) run(cpus []int, argv []string) error {
	runtime.LockOSThread()
	if err := t.aff.SetAffinity(0, cpus); err != nil {
		return fmt.Errorf("failed to set pid 0's affinity: %w", err)
	}
	path, err := t.exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("failed to execute %s: %w", argv[0], err)
	}
	if err := t.exec.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("failed to execute %s: %w", argv[0], err)
	}
	return nil
}

func parsePid(s string) (int, error) {
	pid, err := strconv.Atoi(s)
	if err != nil || pid < 0 {
		return 0, fmt.Errorf("invalid PID argument: %q", s)
	}
	return pid, nil
}
