package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version 构建时通过 -ldflags "-X .../internal/cli.Version=..." 设置
var Version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the promptreplay version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "PromptReplay %s\n", Version)
		},
	}
}
