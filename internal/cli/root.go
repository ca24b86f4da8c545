// Package cli 定义 promptreplay 的命令行。
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Zacy-Sokach/PromptReplay/internal/headless"
	"github.com/Zacy-Sokach/PromptReplay/internal/tui"
)

type rootOptions struct {
	configPath  string
	catalogPath string
	verbose     bool
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "promptreplay",
		Short: "Replay scripted AI conversations in the terminal",
		Long: `promptreplay 在终端中回放预先写好的 AI 对话：
模拟用户输入提示、显示随机的"思考"消息，然后逐字输出固定的回答。`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "配置文件路径（默认 ~/.config/promptreplay/config.yaml）")
	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "关键字目录文件，覆盖配置中的 catalog_file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "输出调试日志")

	cmd.AddCommand(
		newPlayCommand(opts),
		newExportCommand(opts),
		newInitCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

func runInteractive(cmd *cobra.Command, opts *rootOptions) error {
	a, err := loadApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	// 非交互式环境，回放第一个关键字
	if !isTerminal() {
		entry, ok := a.firstEntry()
		if !ok {
			return fmt.Errorf("目录中没有任何关键字")
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "不是交互式终端，使用纯文本模式回放:", entry.Keyword)
		return headless.Play(cmd.Context(), cmd.OutOrStdout(), entry.Request(nil), a.headlessOptions())
	}

	tui.Version = Version
	model := tui.New(a.tuiOptions())
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(cmd.Context()),
	)
	a.log.Info("starting terminal interface", "sections", len(a.catalog.Sections))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("程序运行错误: %w", err)
	}
	return nil
}

func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
