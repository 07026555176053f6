package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticket-assigner/parser"
)

func newValidateCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a dataset without running assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, problems := parser.ValidateFile(input)
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "Validation failed:")
				for _, p := range problems {
					fmt.Fprintf(out, "   - %s\n", p)
				}
				return fmt.Errorf("%s: %d problems found", input, len(problems))
			}
			fmt.Fprintln(out, "Input data validated successfully")
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "dataset.json", "input JSON dataset")
	return cmd
}
