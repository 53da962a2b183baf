package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropdock/dropdock/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Dropdock %s (built %s)\n", version.Version, version.BuildTime)
		},
	}
}
