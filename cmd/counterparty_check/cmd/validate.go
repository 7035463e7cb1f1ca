package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	apperrors "counterpartycheck/internal/errors"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <bin-or-iin>...",
		Short: "Validate BIN/IIN identifiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			classifier, err := newClassifier(cfg)
			if err != nil {
				return apperrors.NewConfigError("invalid BIN date check mode", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "IDENTIFIER\tVALID\tCATEGORY\tKIND\tREASON")
			for _, id := range args {
				c := classifier.Inspect(id)
				fmt.Fprintf(w, "%s\t%t\t%s\t%s\t%s\n", id, c.Valid, c.Category, dash(string(c.Kind)), dash(string(c.Reason)))
			}
			return w.Flush()
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
