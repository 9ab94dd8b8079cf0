package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexstash/lexstash/pkg/lexstash"
)

const modulePath = "github.com/lexstash/lexstash"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lexstash version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "lexstash v%s\nmodule: %s\n", lexstash.Version, modulePath)
			return nil
		},
	}
}
