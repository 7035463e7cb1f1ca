package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"counterpartycheck/normalization"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <name>...",
		Short: "Move the legal form to the front of counterparty names",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			normalizer := normalization.NewLegalFormNormalizer()
			for _, name := range args {
				fmt.Fprintln(cmd.OutOrStdout(), normalizer.Normalize(name))
			}
		},
	}
}
