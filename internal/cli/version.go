package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/sugarlog/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipStore: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sugarlog %s\n", version.Info())
		},
	}
}
