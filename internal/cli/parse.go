package cli

import (
	"github.com/spf13/cobra"
	yaml "go.yaml.in/yaml/v3"

	"github.com/ironsheep/groundviz/internal/annotation"
	"github.com/ironsheep/groundviz/internal/imaging"
)

// parseOutput is the YAML document printed by the parse command.
type parseOutput struct {
	Mode     annotation.Mode `yaml:"mode"`
	Width    int             `yaml:"width"`
	Height   int             `yaml:"height"`
	Entities []parseEntity   `yaml:"entities"`
}

type parseEntity struct {
	Name  string   `yaml:"name"`
	Boxes [][4]int `yaml:"boxes,flow"`
}

func newParseCmd() *cobra.Command {
	var (
		text      string
		textFile  string
		width     int
		height    int
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Print the entities and pixel boxes of a model answer",
		Long: `Parse resolves the annotation markup of an answer against an image size and
prints the result as YAML. With --image the size is that image's display size,
otherwise --width and --height.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			input, err := readText(text, textFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			r, err := cfg.NewRenderer(nil)
			if err != nil {
				return err
			}

			if imagePath != "" {
				img, err := imaging.FromPath(imagePath).Decode(nil)
				if err != nil {
					return err
				}
				b := r.Display(img).Bounds()
				width, height = b.Dx(), b.Dy()
			}

			res := r.Parse(input, width, height)
			doc := parseOutput{Mode: res.Mode, Width: width, Height: height}
			for _, e := range res.Entities {
				pe := parseEntity{Name: e.Name}
				for _, b := range e.Boxes {
					r := b.Rect()
					pe.Boxes = append(pe.Boxes, [4]int{r.X1, r.Y1, r.X2, r.Y2})
				}
				doc.Entities = append(doc.Entities, pe)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "model answer with annotation markup")
	cmd.Flags().StringVarP(&textFile, "text-file", "f", "", `file holding the answer ("-" for stdin)`)
	cmd.Flags().IntVar(&width, "width", 500, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 500, "image height in pixels")
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "take the size from this image's display copy")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
	cmd.MarkFlagsMutuallyExclusive("image", "width")
	cmd.MarkFlagsMutuallyExclusive("image", "height")

	return cmd
}
