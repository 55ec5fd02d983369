package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/groundviz/internal/annotation"
	"github.com/ironsheep/groundviz/internal/imaging"
)

func newRegionCmd() *cobra.Command {
	var (
		maskPath string
		message  string
	)

	cmd := &cobra.Command{
		Use:   "region",
		Short: "Turn a drawn mask into a region token",
		Long: `Region samples the mask onto a 100x100 grid and prints the extent of its red
pixels as {<xmin><ymin><xmax><ymax>}. With --message, the token is appended to
an ` + annotation.IdentifyTag + ` request instead and the message is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, err := imaging.Open(maskPath)
			if err != nil {
				return err
			}

			out := annotation.MaskToRegion(mask)
			if message != "" {
				out = annotation.AppendRegion(message, mask)
			} else if out == "" {
				loggerFromContext(cmd.Context()).Warn("mask is empty", "mask", maskPath)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&maskPath, "mask", "m", "", "mask image; red pixels mark the region")
	cmd.Flags().StringVar(&message, "message", "", "identify request to append the region to")
	_ = cmd.MarkFlagRequired("mask")

	return cmd
}
