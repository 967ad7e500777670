package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/egandro/schedutils/pkg/config"
	"github.com/egandro/schedutils/pkg/schedutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, client schedClient, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&config.Config{}, client)
	cmd.SetOut(&out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCPUsCmd(t *testing.T) {
	cpuInfoPath := filepath.Join(t.TempDir(), "cpuinfo")
	require.NoError(t, os.WriteFile(cpuInfoPath, []byte("model name\t: Test CPU\n"), 0600))

	client := new(MockClient)
	client.On("MaxCPUs").Return(8192, nil)

	out, err := execute(t, client, "cpus", "--cpuinfo", cpuInfoPath)
	require.NoError(t, err)
	assert.Equal(t, "CPU model: Test CPU\nMax CPUs:  8192\n", out)

	out, err = execute(t, client, "cpus", "--json", "--cpuinfo", cpuInfoPath)
	require.NoError(t, err)
	var info CPUsInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, CPUsInfo{MaxCPUs: 8192, Model: "Test CPU"}, info)
}

func TestCPUsCmd_ProbeFails(t *testing.T) {
	client := new(MockClient)
	client.On("MaxCPUs").Return(0, schedutils.ErrOutOfMemory)

	_, err := execute(t, client, "cpus")
	assert.ErrorIs(t, err, schedutils.ErrOutOfMemory)
}

func TestPoliciesCmd(t *testing.T) {
	client := new(MockClient)
	client.On("GetPriorityBounds", schedutils.SchedFIFO).Return(1, 99, nil)
	client.On("GetPriorityBounds", schedutils.SchedRR).Return(1, 99, nil)
	client.On("GetPriorityBounds", schedutils.SchedDeadline).Return(-1, -1, &schedutils.OSError{Op: "sched_get_priority_min", Err: syscall.EINVAL})
	for _, p := range []schedutils.Policy{schedutils.SchedOther, schedutils.SchedBatch, schedutils.SchedIdle} {
		client.On("GetPriorityBounds", p).Return(0, 0, nil)
	}

	out, err := execute(t, client, "policies")
	require.NoError(t, err)
	assert.Equal(t, ""+
		"NAME            CODE  MIN  MAX\n"+
		"SCHED_OTHER     0     0    0\n"+
		"SCHED_FIFO      1     1    99\n"+
		"SCHED_RR        2     1    99\n"+
		"SCHED_BATCH     3     0    0\n"+
		"SCHED_IDLE      5     0    0\n"+
		"SCHED_DEADLINE  6     -    -\n", out)

	out, err = execute(t, client, "policies", "--json")
	require.NoError(t, err)
	var policies []PolicyInfo
	require.NoError(t, json.Unmarshal([]byte(out), &policies))
	require.Len(t, policies, 6)
	assert.Equal(t, PolicyInfo{Name: "SCHED_FIFO", Code: 1, MinPriority: 1, MaxPriority: 99}, policies[1])
	assert.Equal(t, "sched_get_priority_min: invalid argument", policies[5].Error)
}

func TestAffinityCmd(t *testing.T) {
	client := new(MockClient)
	client.On("GetAffinity", 42).Return([]int{0, 1, 2, 3, 64}, nil)
	client.On("GetAffinity", 4242).Return(nil, &schedutils.OSError{Op: "sched_getaffinity(4242)", Err: syscall.ESRCH})

	out, err := execute(t, client, "affinity", "42")
	require.NoError(t, err)
	assert.Equal(t, ""+
		"pid 42's affinity list: 0-3,64\n"+
		"pid 42's affinity mask: 1000000000000000f\n", out)

	out, err = execute(t, client, "affinity", "--json", "42")
	require.NoError(t, err)
	var info AffinityInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, []int{0, 1, 2, 3, 64}, info.CPUs)

	_, err = execute(t, client, "affinity", "4242")
	assert.ErrorIs(t, err, syscall.ESRCH)

	_, err = execute(t, client, "affinity", "self")
	assert.Error(t, err)
}

func TestSchedulerCmd(t *testing.T) {
	client := new(MockClient)
	client.On("GetScheduler", 42).Return(schedutils.SchedRR|schedutils.SchedResetOnFork, nil)
	client.On("GetPriority", 42).Return(20, nil)

	out, err := execute(t, client, "scheduler", "42")
	require.NoError(t, err)
	assert.Equal(t, ""+
		"pid 42's scheduling policy: SCHED_RR|SCHED_RESET_ON_FORK\n"+
		"pid 42's scheduling priority: 20\n", out)

	out, err = execute(t, client, "scheduler", "--json", "42")
	require.NoError(t, err)
	var info SchedulerInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, SchedulerInfo{PID: 42, Policy: "SCHED_RR", Code: 2, ResetOnFork: true, Priority: 20}, info)
}

func TestPublishLatest(t *testing.T) {
	updates := make(chan CPUsInfo, 1)

	publishLatest(updates, CPUsInfo{MaxCPUs: 4096})
	publishLatest(updates, CPUsInfo{MaxCPUs: 8192})

	require.Len(t, updates, 1)
	assert.Equal(t, CPUsInfo{MaxCPUs: 8192}, <-updates)

	publishLatest(updates, CPUsInfo{MaxCPUs: 512})
	assert.Equal(t, CPUsInfo{MaxCPUs: 512}, <-updates)
}
