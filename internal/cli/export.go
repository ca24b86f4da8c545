package cli

import (
	"github.com/spf13/cobra"

	"github.com/Zacy-Sokach/PromptReplay/internal/export"
)

func newExportCommand(root *rootOptions) *cobra.Command {
	var (
		out       string
		title     string
		fragments bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the keyword catalog as a static HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(root)
			if err != nil {
				return err
			}
			defer a.close()

			opts := export.Options{Title: title, Fragments: fragments}
			if out == "" {
				return export.Write(cmd.OutOrStdout(), a.catalog, opts)
			}
			if err := export.WriteFile(out, a.catalog, opts); err != nil {
				return err
			}
			a.log.Info("catalog exported", "path", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "输出文件，默认写到 stdout")
	cmd.Flags().StringVar(&title, "title", "", "页面标题")
	cmd.Flags().BoolVar(&fragments, "fragments", false, "附上回放时显示的 HTML 片段")
	return cmd
}
