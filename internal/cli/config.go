package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/flightlog/internal/config"
	clierrors "github.com/ariel-frischer/flightlog/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configUserFlag   bool
	configForceFlag  bool
	configDryRunFlag bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit flightlog configuration",
	Long: `Inspect and edit flightlog configuration.

Values are layered: FLIGHTLOG_* environment variables override the project
config (.flightlog/config.yml), which overrides the user config
(~/.config/flightlog/config.yml), which overrides the built-in defaults.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		return writeConfigYAML(cmd.OutOrStdout(), cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file with the default values",
	Example: `  flightlog config init          # .flightlog/config.yml
  flightlog config init --user   # ~/.config/flightlog/config.yml
  flightlog config init --force  # overwrite an existing file`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set one configuration value in the project config, or the user config
with --user. The value is validated before the file is touched and existing
comments are kept. Run 'flightlog config keys' for the known keys.`,
	Example: `  flightlog config set git_timeout 10s
  flightlog config set --user plain true`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the known configuration keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfigKeys(cmd.OutOrStdout())
	},
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert .flightlog/config.json to config.yml",
	Long: `Convert the project JSON config to YAML. The JSON file is kept as
config.json.bak after a successful migration.`,
	Args: cobra.NoArgs,
	RunE: runConfigMigrate,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)

	configInitCmd.Flags().BoolVar(&configUserFlag, "user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().BoolVarP(&configForceFlag, "force", "f", false, "Overwrite an existing config file")
	configSetCmd.Flags().BoolVar(&configUserFlag, "user", false, "Write the user config instead of the project config")
	configMigrateCmd.Flags().BoolVar(&configDryRunFlag, "dry-run", false, "Report what would change without writing")

	configCmd.AddCommand(configShowCmd, configInitCmd, configSetCmd, configKeysCmd, configMigrateCmd)
}

// writeConfigYAML prints cfg with the files it was loaded from as comments.
func writeConfigYAML(w io.Writer, cfg *config.Configuration) error {
	if len(cfg.Sources) == 0 {
		fmt.Fprintln(w, "# sources: defaults")
	}
	for _, src := range cfg.Sources {
		fmt.Fprintf(w, "# source: %s\n", src)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// targetConfigPath picks the file written by config init and config set.
func targetConfigPath(ctx context.Context, user bool) (string, error) {
	if user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Configuration, "locating user config directory")
		}
		return path, nil
	}
	if cfgFile != "" {
		return cfgFile, nil
	}
	root, err := workingRoot(ctx)
	if err != nil {
		return "", err
	}
	return config.ProjectConfigPath(root), nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := targetConfigPath(cmd.Context(), configUserFlag)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !configForceFlag {
		return clierrors.New(clierrors.Configuration,
			fmt.Sprintf("config file already exists: %s", path),
			"Use --force to overwrite it",
			"Or change single values with: flightlog config set <key> <value>",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.DirectoryNotCreatable(filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.FileNotWritable(path, err)
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", green("✓"), path)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := targetConfigPath(cmd.Context(), configUserFlag)
	if err != nil {
		return err
	}

	parsed, err := config.SetConfigValue(path, args[0], args[1])
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration,
			fmt.Sprintf("setting %s", args[0]),
			"List valid keys and types with: flightlog config keys",
		)
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Set %s = %v in %s\n", green("✓"), args[0], parsed.Parsed, path)
	return nil
}

func printConfigKeys(w io.Writer) error {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, name := range config.KeyNames() {
		schema := config.KnownKeys[name]
		if _, err := fmt.Fprintf(w, "%s (%s, default %v)\n    %s\n",
			bold(name), schema.Type, schema.Default, dim(schema.Description)); err != nil {
			return err
		}
	}
	return nil
}

func runConfigMigrate(cmd *cobra.Command, _ []string) error {
	root, err := workingRoot(cmd.Context())
	if err != nil {
		return err
	}
	result, err := config.MigrateProjectConfig(root, configDryRunFlag)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Configuration)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Message)
	if !result.Success || result.DryRun {
		return nil
	}

	if err := config.BackupJSONConfig(result.SourcePath, false); err != nil {
		return clierrors.Wrap(err, clierrors.Filesystem)
	}
	fmt.Fprintf(out, "Backed up %s to %s.bak\n", result.SourcePath, result.SourcePath)
	return nil
}
