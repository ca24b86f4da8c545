package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zacy-Sokach/PromptReplay/internal/config"
)

func newInitCommand(root *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := root.paths()
			if err != nil {
				return err
			}
			path := paths.Config

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("配置文件已存在: %s（使用 --force 覆盖）", path)
			}

			if err := config.SaveConfigTo(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已写入配置文件: %s\n", path)
			fmt.Fprintf(cmd.OutOrStdout(), "日志文件: %s\n", paths.Log)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "覆盖已有的配置文件")
	return cmd
}
