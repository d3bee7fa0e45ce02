package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/graphio"
	"github.com/treedec/treedec/pkg/verify"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <graph file> <decomposition file>",
		Short: "Check a decomposition against its graph",
		Long: `Verify checks the three tree-decomposition properties - vertex
existence, hyperedge coverage and connectedness - and reports every
violation. The command exits non-zero for invalid decompositions.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadGraphFile(args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				if os.IsNotExist(err) {
					return errors.Wrap(errors.ErrCodeFileNotFound, err, "decomposition file %s does not exist", args[1])
				}
				return err
			}
			defer f.Close()
			tree, err := graphio.ReadTree(f)
			if err != nil {
				return err
			}

			missing := verify.VertexExistenceViolations(g, tree)
			uncovered := verify.EdgeCoverageViolations(g, tree)
			disconnected := verify.ConnectednessViolations(g, tree)

			printTitle("Verification")
			printKV("bags", fmt.Sprintf("%d", tree.NodeCount()))
			printKV("width", fmt.Sprintf("%d", tree.Width()))

			if len(missing) == 0 && len(uncovered) == 0 && len(disconnected) == 0 {
				printSuccess("valid tree decomposition")
				return nil
			}

			for _, v := range missing {
				printError(fmt.Sprintf("vertex %d is in no bag", v))
			}
			for _, e := range uncovered {
				printError(fmt.Sprintf("hyperedge %d is covered by no bag", e))
			}
			for _, v := range disconnected {
				printError(fmt.Sprintf("bags containing vertex %d are disconnected", v))
			}
			return errors.New(errors.ErrCodeInvalidArgument, "decomposition is not valid for %s", args[0])
		},
	}
	return cmd
}
