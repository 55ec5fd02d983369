package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/groundviz/internal/imaging"
	"github.com/ironsheep/groundviz/internal/recolor"
)

func newRenderCmd() *cobra.Command {
	var (
		imagePath string
		text      string
		textFile  string
		out       string
		grid      int
		markdown  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the annotations of a model answer onto an image",
		Long: `Render draws every box in the answer onto the image, labels grounded phrases,
and prints the answer with each phrase recolored to its box color.

The image is saved to --out, or to a random file in the configured output
directory whose path is logged.`,
		Example: `  groundviz render --image street.jpg --text '<p>a knife</p>{<10><10><20><20>}'
  groundviz render --image street.jpg --text-file answer.txt --out annotated.png --grid 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := *configFromContext(ctx)

			input, err := readText(text, textFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if markdown {
				input = recolor.UnescapeMarkdown(input)
			}
			if cmd.Flags().Changed("grid") {
				cfg.GridStep = grid
			}

			r, err := cfg.NewRenderer(nil)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			res, err := r.Visualize(input, imaging.FromPath(imagePath))
			if err != nil {
				return err
			}
			if res.Image == nil {
				logger.Warn("no annotation found", "image", imagePath)
				return nil
			}

			path := out
			if path != "" {
				err = imaging.Save(res.Image, path)
			} else {
				path, err = imaging.SaveTemp(res.Image, cfg.Output.Dir, cfg.Extension())
			}
			if err != nil {
				return err
			}
			prog.done("rendered", "mode", res.Mode, "entities", len(res.Entities), "labels", len(res.Labels), "path", path)

			if res.Text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "image to draw on")
	cmd.Flags().StringVarP(&text, "text", "t", "", "model answer with annotation markup")
	cmd.Flags().StringVarP(&textFile, "text-file", "f", "", `file holding the answer ("-" for stdin)`)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image path (format from extension)")
	cmd.Flags().IntVar(&grid, "grid", 0, "overlay the model coordinate grid every N units")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "unescape chat-escaped markup before parsing")
	_ = cmd.MarkFlagRequired("image")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")

	return cmd
}
