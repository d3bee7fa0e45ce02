package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/graphio"
	"github.com/treedec/treedec/pkg/pipeline"
	"github.com/treedec/treedec/pkg/render"
)

func newRenderCmd() *cobra.Command {
	var (
		format       string
		output       string
		inducedEdges bool
	)

	cmd := &cobra.Command{
		Use:   "render <decomposition file>",
		Short: "Convert a stored decomposition to DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != pipeline.FormatDOT && format != pipeline.FormatSVG {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid render format %q (must be dot or svg)", format)
			}

			f, err := os.Open(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return errors.Wrap(errors.ErrCodeFileNotFound, err, "decomposition file %s does not exist", args[0])
				}
				return err
			}
			defer f.Close()
			tree, err := graphio.ReadTree(f)
			if err != nil {
				return err
			}

			dot := render.ToDOT(tree, render.Options{ShowInducedEdges: inducedEdges})
			data := []byte(dot)
			if format == pipeline.FormatSVG {
				if data, err = render.RenderSVG(dot); err != nil {
					return err
				}
			}

			path := output
			if path == "" {
				path = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + format
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}
			printSuccess("wrote " + path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "render format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with the format extension)")
	cmd.Flags().BoolVar(&inducedEdges, "induced-edges", false, "annotate bags with their induced hyperedges")

	return cmd
}
