package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"typeprobe/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "typeprobe",
	Short: "Type-assertion harness for Go snippets",
	Long:  `typeprobe checks whether snippets of Go code type-check against reference type declarations`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("verbose", false, "dump the assembled synthetic source before each check")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor turns the --color flag into a concrete decision.
func resolveColor(mode string, out *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(out)
	}
}
