package main

import (
	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mimic-subset [command]",
		Short:         "Create manageable subsets of the MIMIC-III clinical database",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(createCmd())

	return cmd
}
