package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/egandro/schedutils/pkg/schedutils"
	"github.com/spf13/cobra"
)

type PolicyInfo struct {
	Name        string `json:"name"`
	Code        int    `json:"code"`
	MinPriority int    `json:"min_priority"`
	MaxPriority int    `json:"max_priority"`
	Error       string `json:"error,omitempty"`
}

func collectPolicies(client schedClient) []PolicyInfo {
	var result []PolicyInfo
	for _, p := range schedutils.Policies() {
		info := PolicyInfo{Name: schedutils.PolicyName(p), Code: int(p)}
		lo, hi, err := client.GetPriorityBounds(p)
		info.MinPriority, info.MaxPriority = lo, hi
		if err != nil {
			info.Error = err.Error()
		}
		result = append(result, info)
	}
	return result
}

func newPoliciesCmd(client schedClient) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "List scheduling policies and their priority ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policies := collectPolicies(client)
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), policies)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCODE\tMIN\tMAX")
			for _, p := range policies {
				if p.Error != "" {
					fmt.Fprintf(w, "%s\t%d\t-\t-\n", p.Name, p.Code)
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", p.Name, p.Code, p.MinPriority, p.MaxPriority)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}
