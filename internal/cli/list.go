package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ariel-frischer/flightlog/internal/changelog"
	clierrors "github.com/ariel-frischer/flightlog/internal/errors"
	"github.com/spf13/cobra"
)

var (
	listLastFlag int
	listTypeFlag string
	listYAMLFlag bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show recent changelog entries",
	Long: `Show entries from the project changelog, oldest first.

By default the 10 most recent entries are shown. Use --type to narrow the
list to one change type and --yaml for machine-readable output.`,
	Example: `  flightlog list                     # 10 most recent entries
  flightlog list --last 0            # every entry
  flightlog list --type Critical-Fix # only critical fixes
  flightlog list --yaml              # YAML for scripts`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.GroupID = GroupInspect
	listCmd.Flags().IntVarP(&listLastFlag, "last", "n", 10, "Number of entries to show (0 = all)")
	listCmd.Flags().StringVarP(&listTypeFlag, "type", "t", "", "Only show entries of this change type")
	listCmd.Flags().BoolVar(&listYAMLFlag, "yaml", false, "Output entries as YAML")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if listTypeFlag != "" && !changelog.ChangeType(listTypeFlag).IsValid() {
		return clierrors.InvalidChangeType(listTypeFlag, changelog.ChangeTypeNames(), changelog.ErrInvalidChangeType)
	}

	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	path, err := resolveChangelogPath(cmd, cfg)
	if err != nil {
		return err
	}

	all, err := loadEntries(path)
	if err != nil {
		return err
	}
	matching := changelog.Filter(all, listTypeFlag)
	entries := changelog.LastN(matching, listLastFlag)

	out := cmd.OutOrStdout()
	if listYAMLFlag {
		return changelog.WriteYAML(entries, out)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatTerminal(entries, out, changelog.FormatOptions{Plain: plainOutput(cfg)}); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	if total := len(matching); total > len(entries) {
		fmt.Fprintf(out, "\n(%d of %d entries shown. Use --last %d to see all)\n", len(entries), total, total)
	}
	return nil
}

// loadEntries parses the changelog at path, mapping a missing file onto a
// user-facing error.
func loadEntries(path string) ([]changelog.ParsedEntry, error) {
	entries, err := changelog.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, clierrors.ChangelogNotFound(path)
		}
		return nil, clierrors.Wrap(err, clierrors.Filesystem)
	}
	logDebug("loaded %d entries from %s", len(entries), path)
	return entries, nil
}

func fileMissing(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}
