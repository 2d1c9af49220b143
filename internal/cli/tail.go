package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/flightlog/internal/changelog"
	clierrors "github.com/ariel-frischer/flightlog/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	tailLinesFlag  int
	tailFollowFlag bool
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print the newest entries, one line each",
	Long: `Print the newest changelog entries as one-line summaries.

With --follow, tail keeps running and prints every entry appended after it
started, until interrupted. The changelog directory must exist; the file
itself may be created later.`,
	Example: `  flightlog tail
  flightlog tail -n 20
  flightlog tail --follow`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

func init() {
	tailCmd.GroupID = GroupInspect
	tailCmd.Flags().IntVarP(&tailLinesFlag, "lines", "n", 5, "Number of existing entries to print (0 = none, e.g. with --follow)")
	tailCmd.Flags().BoolVarP(&tailFollowFlag, "follow", "f", false, "Keep printing entries as they are appended")
	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	path, err := resolveChangelogPath(cmd, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := changelog.FormatOptions{Plain: plainOutput(cfg)}

	switch {
	case !fileMissing(path):
		entries, err := loadEntries(path)
		if err != nil {
			return err
		}
		for _, e := range tailEntries(entries, tailLinesFlag) {
			printTailLine(out, e, opts)
		}
	case !tailFollowFlag:
		return clierrors.ChangelogNotFound(path)
	}

	if !tailFollowFlag {
		return nil
	}

	follower, err := changelog.NewFollower(path)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Filesystem,
			"cannot follow "+path,
			`Record an entry first: flightlog Feature "<summary>" "<risk analysis>"`)
	}
	defer follower.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logDebug("following %s", path)
	followEntries(ctx, follower.Follow(ctx), out, opts)
	return nil
}

// tailEntries returns the last n entries. Unlike list --last, zero selects
// nothing.
func tailEntries(entries []changelog.ParsedEntry, n int) []changelog.ParsedEntry {
	if n <= 0 {
		return nil
	}
	return changelog.LastN(entries, n)
}

// followEntries prints entries as they arrive until the channel closes or
// ctx is cancelled.
func followEntries(ctx context.Context, entries <-chan changelog.ParsedEntry, w io.Writer, opts changelog.FormatOptions) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-entries:
			if !ok {
				return
			}
			printTailLine(w, e, opts)
		}
	}
}

func printTailLine(w io.Writer, e changelog.ParsedEntry, opts changelog.FormatOptions) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", dim(e.Timestamp), changelog.FormatEntrySummary(e, opts))
}
