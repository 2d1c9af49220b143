package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/flightlog/internal/changelog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the valid change types",
	Long: `List the change types accepted as the first argument. Types are
case-sensitive. With --plain only the names are printed, one per line.`,
	Example: `  flightlog types
  flightlog types --plain`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTypes(cmd.OutOrStdout(), plainFlag)
	},
}

func init() {
	typesCmd.GroupID = GroupRecording
	rootCmd.AddCommand(typesCmd)
}

func printTypes(w io.Writer, plain bool) error {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, ct := range changelog.ChangeTypes() {
		var err error
		if plain {
			_, err = fmt.Fprintln(w, ct)
		} else {
			_, err = fmt.Fprintf(w, "  %s  %s %s\n", ct.Glyph(), bold(fmt.Sprintf("%-13s", ct)), dim(ct.Description()))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
