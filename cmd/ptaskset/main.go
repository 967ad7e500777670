package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/egandro/schedutils/pkg/config"
	"github.com/egandro/schedutils/pkg/executor"
	"github.com/egandro/schedutils/pkg/logger"
	"github.com/egandro/schedutils/pkg/schedutils"
	"github.com/spf13/cobra"
)

func newRootCmd(t *taskset) *cobra.Command {
	var pidMode, allTasks, quiet, jsonOutput bool

	cmd := &cobra.Command{
		Use:   "ptaskset [options] [mask | cpu-list] [pid | cmd [args...]]",
		Short: "Show or change the CPU affinity of a process",
		Long: `Show or change the CPU affinity of an existing process, or run a new
command with a given CPU affinity.

The default behavior is to run a new command. The affinity is given as a
hexadecimal mask (e.g. 0x3) or, with --cpu-list, as a list like 0,5,7,9-11.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pidMode {
				switch len(args) {
				case 1:
					pid, err := parsePid(args[0])
					if err != nil {
						return err
					}
					tids, err := t.tasks(pid, allTasks)
					if err != nil {
						return err
					}
					if jsonOutput {
						return t.showJSON(tids)
					}
					for _, tid := range tids {
						if err := t.showAffinity(tid, "current"); err != nil {
							return err
						}
					}
					return nil
				case 2:
					cpus, err := t.parse(args[0])
					if err != nil {
						return err
					}
					pid, err := parsePid(args[1])
					if err != nil {
						return err
					}
					tids, err := t.tasks(pid, allTasks)
					if err != nil {
						return err
					}

					var s *spinner.Spinner
					var progress func(done, total int)
					if allTasks && !quiet {
						s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
						s.Suffix = fmt.Sprintf(" Setting affinity of %d threads...", len(tids))
						s.Start()
						progress = func(done, total int) {
							s.Lock()
							s.Suffix = fmt.Sprintf(" Setting affinity: %d/%d threads", done, total)
							s.Unlock()
						}
					}
					err = t.changeAffinity(tids, cpus, progress)
					if s != nil {
						s.Stop()
					}
					return err
				}
				_ = cmd.Usage()
				return errors.New("bad usage")
			}

			if len(args) < 2 {
				_ = cmd.Usage()
				return errors.New("bad usage")
			}
			cpus, err := t.parse(args[0])
			if err != nil {
				return err
			}
			return t.run(cpus, args[1:])
		},
	}
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().BoolVarP(&pidMode, "pid", "p", false, "operate on existing given pid")
	cmd.Flags().BoolVarP(&t.listFormat, "cpu-list", "c", false, "display and specify cpus in list format")
	cmd.Flags().BoolVarP(&allTasks, "all-tasks", "a", false, "operate on all the tasks (threads) for a given pid")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Disable progress spinner")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print current affinity as JSON")
	return cmd
}

func main() {
	cfg := config.Load("")
	if err := logger.Setup(os.Stderr, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "%v, defaulting to INFO\n", err)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	t := &taskset{
		aff:     schedutils.New(cfg.ClientOptions()...),
		exec:    &executor.DefaultExecutor{},
		out:     os.Stdout,
		procDir: config.ConstantProcDir,
	}
	if err := newRootCmd(t).Execute(); err != nil {
		os.Exit(1)
	}
}
