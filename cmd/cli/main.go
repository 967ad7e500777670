package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/egandro/schedutils/pkg/config"
	"github.com/egandro/schedutils/pkg/logger"
	"github.com/egandro/schedutils/pkg/schedutils"
	"github.com/spf13/cobra"
)

func newRootCmd(cfg *config.Config, client schedClient) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "schedutils-cli",
		Short:        "Inspect CPU affinity and scheduling policies",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCPUsCmd(cfg, client))
	rootCmd.AddCommand(newPoliciesCmd(client))
	rootCmd.AddCommand(newAffinityCmd(client))
	rootCmd.AddCommand(newSchedulerCmd(client))
	return rootCmd
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := schedutils.New(cfg.ClientOptions()...)
	if err := newRootCmd(cfg, client).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
