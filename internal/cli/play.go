package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zacy-Sokach/PromptReplay/internal/catalog"
	"github.com/Zacy-Sokach/PromptReplay/internal/headless"
)

type playOptions struct {
	keyword  string
	prompt   string
	response string
	topic    string
}

func newPlayCommand(root *rootOptions) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Replay one conversation as plain text",
		Example: `  promptreplay play --keyword Education
  promptreplay play --prompt "Hi" --response "Hello" --topic skills`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.keyword == "" && opts.prompt == "" {
				return fmt.Errorf("需要 --keyword 或 --prompt")
			}

			a, err := loadApp(root)
			if err != nil {
				return err
			}
			defer a.close()

			entry := catalog.Entry{Keyword: opts.topic, Prompt: opts.prompt, Response: opts.response, Topic: opts.topic}
			if opts.keyword != "" {
				if entry, err = a.catalog.Find(opts.keyword); err != nil {
					return err
				}
			}

			return headless.Play(cmd.Context(), cmd.OutOrStdout(), entry.Request(nil), a.headlessOptions())
		},
	}

	cmd.Flags().StringVarP(&opts.keyword, "keyword", "k", "", "目录中的关键字")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "要输入的提示")
	cmd.Flags().StringVar(&opts.response, "response", "", "要输出的回答")
	cmd.Flags().StringVar(&opts.topic, "topic", "", "挑选思考消息用的话题")
	cmd.MarkFlagsMutuallyExclusive("keyword", "prompt")
	cmd.MarkFlagsMutuallyExclusive("keyword", "response")

	return cmd
}
