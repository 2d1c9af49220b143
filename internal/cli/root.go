// Package cli wires the flightlog cobra commands: the root append command and
// the list, tail, path, types, config and version subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/flightlog/internal/changelog"
	"github.com/ariel-frischer/flightlog/internal/config"
	clierrors "github.com/ariel-frischer/flightlog/internal/errors"
	"github.com/ariel-frischer/flightlog/internal/git"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupRecording     = "recording"
	GroupInspect       = "inspect"
	GroupConfiguration = "configuration"
)

var (
	cfgFile   string
	debugFlag bool
	plainFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "flightlog <ChangeType> <Summary> <RiskAnalysis>",
	Short: "Append a change record to the project's AI changelog",
	Long: `flightlog records one change per invocation in docs/AI_CHANGELOG.md at the
root of the current git repository. Every record carries a change type, a
one-line summary and a risk analysis, and all of them are required.

The changelog is created with a header on first use and is only ever
appended to afterwards.`,
	Example: `  # Record a change
  flightlog Feature "Add message handler" "May affect existing API responses"

  # Critical fixes use a hyphenated type
  flightlog Critical-Fix "Patch auth bypass" "Sessions issued before the fix stay valid"

  # See the valid change types
  flightlog types

  # Show the most recent entries
  flightlog list --last 5`,
	Args:              validateAppendArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
	RunE:              runAppend,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRecording, Title: "Recording:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspecting the changelog:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Project config file (default: .flightlog/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output (no colors or glyphs)")

	// Flags end at the change type so summaries like "-1 offset" stay text.
	rootCmd.Flags().SetInterspersed(false)
}

// Execute runs the CLI with the process arguments. Errors are printed to
// stderr before being returned.
func Execute() error {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			clierrors.FprintAny(stderr, err, clierrors.Usage)
		}
	}
	return err
}

// setupGlobals applies the global flags before any command runs.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	configureDebugLogging(debugFlag, cmd.ErrOrStderr())
	if plainFlag {
		color.NoColor = true
	}
	return nil
}

// loadConfig finds the project root for the working directory and loads the
// layered configuration, reading the project config from <root>/.flightlog
// unless --config names another file.
func loadConfig(ctx context.Context) (*config.Configuration, error) {
	root, err := workingRoot(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: cfgFile,
		ProjectDir:        root,
	})
	if err != nil {
		return nil, clierrors.ConfigLoadError(err)
	}
	if cfg.Plain {
		color.NoColor = true
	}
	logDebug("config loaded: root=%s dir=%s file=%s git_timeout=%s sources=%v",
		cfg.ProjectDir, cfg.ChangelogDir, cfg.ChangelogFile, cfg.GitTimeout, cfg.Sources)
	return cfg, nil
}

// workingRoot returns the project root for the current directory.
func workingRoot(ctx context.Context) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", clierrors.Wrap(fmt.Errorf("getting current directory: %w", err), clierrors.Filesystem)
	}
	return discoverRoot(ctx, cwd), nil
}

// discoverRoot returns the project root for cwd. The git timeout is taken
// from the user config and environment only: the project config lives under
// the root being searched for.
func discoverRoot(ctx context.Context, cwd string) string {
	var opts git.RootOptions
	base, err := config.LoadWithOptions(config.LoadOptions{SkipProjectConfig: true})
	if err != nil {
		logDebug("root discovery uses the default git timeout: %v", err)
	} else {
		opts.Timeout = base.GitTimeout
	}
	return git.FindProjectRoot(ctx, cwd, opts)
}

// plainOutput reports whether glyph-free output was requested.
func plainOutput(cfg *config.Configuration) bool {
	return plainFlag || cfg.Plain
}

// newPathResolver builds a resolver rooted at the project root loadConfig found.
func newPathResolver(cfg *config.Configuration) *changelog.PathResolver {
	return changelog.NewPathResolver(cfg.ChangelogDir, cfg.ChangelogFile, changelog.FixedRoot(cfg.ProjectDir))
}

// resolveChangelogPath resolves the changelog for the current directory.
func resolveChangelogPath(cmd *cobra.Command, cfg *config.Configuration) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", clierrors.Wrap(fmt.Errorf("getting current directory: %w", err), clierrors.Filesystem)
	}
	return newPathResolver(cfg).Resolve(cmd.Context(), cwd), nil
}
