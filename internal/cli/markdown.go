package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/groundviz/internal/recolor"
)

func newMarkdownCmd() *cobra.Command {
	var (
		text     string
		textFile string
		unescape bool
	)

	cmd := &cobra.Command{
		Use:   "markdown",
		Short: "Escape annotation markup for chat display",
		Long: `Markdown backslash-escapes the angle brackets of annotation markup so chat
renderers show it verbatim. With --unescape it reverses the escaping.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readText(text, textFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if unescape {
				fmt.Fprintln(cmd.OutOrStdout(), recolor.UnescapeMarkdown(input))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), recolor.EscapeMarkdown(input))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "text to convert")
	cmd.Flags().StringVarP(&textFile, "text-file", "f", "", `file holding the text ("-" for stdin)`)
	cmd.Flags().BoolVarP(&unescape, "unescape", "u", false, "reverse the escaping")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")

	return cmd
}
