package cmd

import (
	"github.com/spf13/cobra"

	"opsharness/internal/bootstrap"
	"opsharness/pkg/logging"
)

// outputDir is where the generator command writes manifests.
var outputDir string

// newGeneratorCmd creates the command that renders deployment manifests.
func newGeneratorCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "generator",
		Short: "Write the CRD and ClusterRole manifests",
		Long: `Renders the KubeOpsTest CustomResourceDefinition and the ClusterRole the
harness needs. Without --output-dir the manifests are written to stdout as a
multi-document YAML stream. No cluster is contacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelInfo
			if debug {
				level = logging.LevelDebug
			}
			// stdout may carry the manifests
			logging.InitForCLI(level, cmd.ErrOrStderr())

			return bootstrap.WriteManifests(outputDir, cmd.OutOrStdout())
		},
	}

	c.Flags().StringVar(&outputDir, "output-dir", "", "Directory to write the manifests to")
	return c
}
