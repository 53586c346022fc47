package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for goldbankd. It is called once in
// the main function.
func NewRootCmd(home string, healthPort int) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "goldbankd",
		Short: "GoldBank Vault Daemon",
		Long: `GoldBank is a custodial vault holding a native asset and the KGLD token,
with oracle-priced swaps between them and capped, pausable withdrawals.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().String("home", home, "directory for config and data")

	rootCmd.AddCommand(
		DemoCmd(home, healthPort),
	)

	return rootCmd
}
