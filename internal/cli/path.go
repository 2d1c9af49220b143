package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	pathRootFlag   bool
	pathExistsFlag bool
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved changelog path",
	Long: `Print the changelog path the next entry would be appended to.

The lookup prefers <cwd>/docs/AI_CHANGELOG.md when it already exists and
falls back to docs/AI_CHANGELOG.md under the repository root.`,
	Example: `  flightlog path
  flightlog path --root
  flightlog path --exists && echo "changelog present"`,
	Args: cobra.NoArgs,
	RunE: runPath,
}

func init() {
	pathCmd.GroupID = GroupInspect
	pathCmd.Flags().BoolVar(&pathRootFlag, "root", false, "Print the project root instead of the changelog path")
	pathCmd.Flags().BoolVar(&pathExistsFlag, "exists", false, "Exit with status 1 when the changelog does not exist yet")
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	if pathRootFlag {
		fmt.Fprintln(cmd.OutOrStdout(), cfg.ProjectDir)
		return nil
	}

	path, err := resolveChangelogPath(cmd, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)

	if pathExistsFlag {
		if _, err := os.Stat(path); err != nil {
			return NewExitError(ExitFailure)
		}
	}
	return nil
}
