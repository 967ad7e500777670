package main

import (
	"fmt"
	"io"

	"github.com/egandro/schedutils/pkg/config"
	"github.com/egandro/schedutils/pkg/hotplug"
	"github.com/spf13/cobra"
)

type CPUsInfo struct {
	MaxCPUs int    `json:"max_cpus"`
	Model   string `json:"model"`
}

func newCPUsCmd(cfg *config.Config, client schedClient) *cobra.Command {
	var jsonOutput bool
	var watch bool
	var cpuInfoPath string

	cmd := &cobra.Command{
		Use:   "cpus",
		Short: "Show the number of CPUs the kernel's affinity mask covers",
		Long: `Probe the kernel for the width of its CPU affinity mask. This is the
number of CPUs affinity masks must be able to hold, which may exceed the
number of CPUs that are online.

With --watch, keep running and probe again after every burst of CPU
hotplug events.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			n, err := client.MaxCPUs()
			if err != nil {
				return err
			}
			info := CPUsInfo{MaxCPUs: n, Model: getCPUModelName(cpuInfoPath)}
			if jsonOutput {
				if err := printJSON(out, info); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "CPU model: %s\n", info.Model)
				fmt.Fprintf(out, "Max CPUs:  %d\n", info.MaxCPUs)
			}
			if !watch {
				return nil
			}
			return watchCPUs(cmd, cfg, client, out, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-probe on CPU hotplug events until interrupted")
	cmd.Flags().StringVar(&cpuInfoPath, "cpuinfo", "", "Path to cpuinfo file")
	_ = cmd.Flags().MarkHidden("cpuinfo")
	return cmd
}

func watchCPUs(cmd *cobra.Command, cfg *config.Config, client schedClient, out io.Writer, jsonOutput bool) error {
	updates := make(chan CPUsInfo, 1)
	w := hotplug.NewWatcher(client, cfg, func(maxCPUs int, _ []hotplug.CPUEvent) {
		publishLatest(updates, CPUsInfo{MaxCPUs: maxCPUs})
	})
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return err
	}
	defer func() { _ = w.Stop() }()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case info := <-updates:
			if jsonOutput {
				if err := printJSON(out, info); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(out, "Max CPUs:  %d\n", info.MaxCPUs)
		}
	}
}

// publishLatest replaces a pending unread value in updates with info. There
// must be a single sender and updates must have a buffer of one.
func publishLatest(updates chan CPUsInfo, info CPUsInfo) {
	select {
	case <-updates:
	default:
	}
	updates <- info
}
