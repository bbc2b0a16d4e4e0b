package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"typeprobe/internal/diagfmt"
	"typeprobe/internal/extract"
	"typeprobe/internal/source"
)

var typesCmd = &cobra.Command{
	Use:   "types [flags] <file.go>",
	Short: "List the named type declarations extracted from a file",
	Long: `Parse a reference file and print the table of top-level named type
declarations, in declaration order, as the checker would derive it.`,
	Args: cobra.ExactArgs(1),
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().Bool("source", false, "print each declaration's exact source text")
	typesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type typeEntryJSON struct {
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
}

func runTypes(cmd *cobra.Command, args []string) error {
	showSource, err := cmd.Flags().GetBool("source")
	if err != nil {
		return fmt.Errorf("failed to get source flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	content, err := source.DiskHost{}.ReadFile(args[0])
	if err != nil {
		return err
	}
	table := extract.Types(content)

	switch format {
	case "json":
		entries := make([]typeEntryJSON, 0, table.Len())
		for _, name := range table.Names() {
			e := typeEntryJSON{Name: name}
			if showSource {
				e.Source, _ = table.Source(name)
			}
			entries = append(entries, e)
		}
		return diagfmt.WriteJSON(os.Stdout, entries)
	case "pretty":
		if table.Len() == 0 {
			fmt.Println("no top-level named type declarations")
			return nil
		}
		for _, name := range table.Names() {
			if showSource {
				text, _ := table.Source(name)
				diagfmt.DumpSource(os.Stdout, name, text)
			} else {
				fmt.Println(name)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}
