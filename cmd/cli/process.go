package main

import (
	"fmt"

	"github.com/egandro/schedutils/pkg/cpulist"
	"github.com/egandro/schedutils/pkg/schedutils"
	"github.com/spf13/cobra"
)

type AffinityInfo struct {
	PID  int    `json:"pid"`
	List string `json:"list"`
	Mask string `json:"mask"`
	CPUs []int  `json:"cpus"`
}

type SchedulerInfo struct {
	PID         int    `json:"pid"`
	Policy      string `json:"policy"`
	Code        int    `json:"code"`
	ResetOnFork bool   `json:"reset_on_fork"`
	Priority    int    `json:"priority"`
}

func newAffinityCmd(client schedClient) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "affinity <pid>",
		Short: "Show the CPU affinity of a process (0 for the CLI itself)",
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := pidArg(args)
			if err != nil {
				return err
			}
			cpus, err := client.GetAffinity(pid)
			if err != nil {
				return err
			}
			info := AffinityInfo{PID: pid, List: cpulist.Format(cpus), Mask: cpulist.FormatMask(cpus), CPUs: cpus}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pid %d's affinity list: %s\n", pid, info.List)
			fmt.Fprintf(cmd.OutOrStdout(), "pid %d's affinity mask: %s\n", pid, info.Mask)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func newSchedulerCmd(client schedClient) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "scheduler <pid>",
		Short: "Show the scheduling policy and priority of a process",
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := pidArg(args)
			if err != nil {
				return err
			}
			policy, err := client.GetScheduler(pid)
			if err != nil {
				return err
			}
			prio, err := client.GetPriority(pid)
			if err != nil {
				return err
			}
			info := SchedulerInfo{
				PID:         pid,
				Policy:      schedutils.PolicyName(policy),
				Code:        int(policy &^ schedutils.SchedResetOnFork),
				ResetOnFork: policy.ResetOnFork(),
				Priority:    prio,
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), info)
			}
			name := info.Policy
			if info.ResetOnFork {
				name += "|SCHED_RESET_ON_FORK"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pid %d's scheduling policy: %s\n", pid, name)
			fmt.Fprintf(cmd.OutOrStdout(), "pid %d's scheduling priority: %d\n", pid, prio)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}
