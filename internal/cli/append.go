package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/flightlog/internal/changelog"
	clierrors "github.com/ariel-frischer/flightlog/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// validateAppendArgs requires the three positional arguments of the root
// command. Extra arguments are accepted and reported by runAppend.
func validateAppendArgs(_ *cobra.Command, args []string) error {
	if len(args) < 3 {
		return clierrors.MissingArguments(len(args))
	}
	return nil
}

func runAppend(cmd *cobra.Command, args []string) error {
	if len(args) > 3 {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(cmd.ErrOrStderr(), "%s ignoring %d extra argument(s): %s\n",
			yellow("⚠"), len(args)-3, strings.Join(args[3:], " "))
	}

	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	appender := changelog.NewAppender(newPathResolver(cfg))
	result, err := appender.Append(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		return appendError(args[0], err)
	}

	printAppendResult(cmd.OutOrStdout(), result)
	return nil
}

// appendError maps appender failures onto user-facing CLI errors.
func appendError(changeType string, err error) error {
	var (
		dirErr   *changelog.DirError
		writeErr *changelog.WriteError
	)

	switch {
	case errors.Is(err, changelog.ErrInvalidChangeType):
		return clierrors.InvalidChangeType(changeType, changelog.ChangeTypeNames(), err)
	case errors.Is(err, changelog.ErrEmptySummary):
		return clierrors.EmptySummary(err)
	case errors.Is(err, changelog.ErrEmptyRiskAnalysis):
		return clierrors.EmptyRiskAnalysis(err)
	case errors.As(err, &dirErr):
		return clierrors.DirectoryNotCreatable(dirErr.Dir, dirErr.Err)
	case errors.As(err, &writeErr):
		return clierrors.FileNotWritable(writeErr.Path, writeErr.Err)
	default:
		return clierrors.Wrap(err, clierrors.Filesystem)
	}
}

func printAppendResult(w io.Writer, result *changelog.AppendResult) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if result.CreatedDir {
		fmt.Fprintf(w, "📁 Created directory: %s\n", filepath.Dir(result.Path))
	}
	if result.CreatedFile {
		fmt.Fprintf(w, "%s Created %s with initial entry\n", green("✅ [Flight Recorder]"), result.Path)
	} else {
		fmt.Fprintf(w, "%s Log appended to %s\n", green("✅ [Flight Recorder]"), result.Path)
	}
	fmt.Fprintf(w, "   %s %s\n", dim("Type:"), result.Entry.Type.Display())
	fmt.Fprintf(w, "   %s %s\n", dim("Summary:"), result.Entry.Summary)
}
