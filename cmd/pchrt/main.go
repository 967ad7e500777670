package main

import (
	"errors"
	"os"

	"github.com/egandro/schedutils/pkg/config"
	"github.com/egandro/schedutils/pkg/executor"
	"github.com/egandro/schedutils/pkg/logger"
	"github.com/egandro/schedutils/pkg/schedutils"
	"github.com/spf13/cobra"
)

type policyFlags struct {
	batch, fifo, other, rr, idle, deadline bool
	resetOnFork                            bool
}

// policy returns the selected policy, or fallback if no policy option was
// given. Selecting more than one policy is an error.
func (f *policyFlags) policy(fallback schedutils.Policy) (schedutils.Policy, error) {
	selected := []struct {
		set    bool
		policy schedutils.Policy
	}{
		{f.other, schedutils.SchedOther},
		{f.fifo, schedutils.SchedFIFO},
		{f.rr, schedutils.SchedRR},
		{f.batch, schedutils.SchedBatch},
		{f.idle, schedutils.SchedIdle},
		{f.deadline, schedutils.SchedDeadline},
	}
	policy := fallback
	count := 0
	for _, s := range selected {
		if s.set {
			policy = s.policy
			count++
		}
	}
	if count > 1 {
		return 0, errors.New("only one scheduling policy option may be given")
	}
	if f.resetOnFork {
		policy |= schedutils.SchedResetOnFork
	}
	return policy, nil
}

func newRootCmd(cfg *config.Config, c *chrt) *cobra.Command {
	var flags policyFlags
	var pidMode, showMax, verbose bool

	cmd := &cobra.Command{
		Use:   "pchrt [options] [prio] [pid | cmd [args...]]",
		Short: "Manipulate real-time attributes of a process",
		Long: `Show or change the scheduling policy and priority of an existing process,
or run a new command with the given policy and priority.

You must give a priority if changing policy.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showMax {
				return c.showPriorityLimits()
			}
			policy, err := flags.policy(cfg.Policy())
			if err != nil {
				return err
			}

			if pidMode {
				switch len(args) {
				case 1:
					pid, err := parsePid(args[0])
					if err != nil {
						return err
					}
					return c.showSettings(pid, "current")
				case 2:
					prio, err := parsePriority(args[0])
					if err != nil {
						return err
					}
					pid, err := parsePid(args[1])
					if err != nil {
						return err
					}
					if verbose {
						if err := c.showSettings(pid, "current"); err != nil {
							return err
						}
					}
					if err := c.changeSettings(pid, policy, prio); err != nil {
						return err
					}
					if verbose {
						return c.showSettings(pid, "new")
					}
					return nil
				}
				_ = cmd.Usage()
				return errors.New("bad usage")
			}

			if len(args) < 2 {
				_ = cmd.Usage()
				return errors.New("bad usage")
			}
			prio, err := parsePriority(args[0])
			if err != nil {
				return err
			}
			return c.run(policy, prio, args[1:])
		},
	}
	// Everything after the priority belongs to the command to run.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().BoolVarP(&flags.batch, "batch", "b", false, "set policy to SCHED_BATCH")
	cmd.Flags().BoolVarP(&flags.fifo, "fifo", "f", false, "set policy to SCHED_FIFO")
	cmd.Flags().BoolVarP(&flags.other, "other", "o", false, "set policy to SCHED_OTHER")
	cmd.Flags().BoolVarP(&flags.rr, "rr", "r", false, "set policy to SCHED_RR (default)")
	cmd.Flags().BoolVarP(&flags.idle, "idle", "i", false, "set policy to SCHED_IDLE")
	cmd.Flags().BoolVarP(&flags.deadline, "deadline", "d", false, "set policy to SCHED_DEADLINE")
	cmd.Flags().BoolVarP(&flags.resetOnFork, "reset-on-fork", "R", false, "set SCHED_RESET_ON_FORK")
	cmd.Flags().BoolVarP(&pidMode, "pid", "p", false, "operate on existing given pid")
	cmd.Flags().BoolVarP(&showMax, "max", "m", false, "show min and max valid priorities")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "display status information")
	return cmd
}

func main() {
	cfg := config.Load("")
	if err := logger.Setup(os.Stderr, cfg.LogLevel); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + ", defaulting to INFO\n")
	}
	if err := cfg.Validate(); err != nil {
		_, _ = os.Stderr.WriteString("Error: invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	c := &chrt{
		sched: schedutils.New(cfg.ClientOptions()...),
		exec:  &executor.DefaultExecutor{},
		out:   os.Stdout,
	}
	if err := newRootCmd(cfg, c).Execute(); err != nil {
		os.Exit(1)
	}
}
