package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"typeprobe/internal/checker"
	"typeprobe/internal/config"
	"typeprobe/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl [flags]",
	Short: "Interactively check snippets against the configured declarations",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().String("ref", "", "reference file whose type declarations become selectable")
	replCmd.Flags().String("type", "", "restrict every unit to this named type from the reference")
	replCmd.Flags().StringArray("decls", nil, "declaration file included in every compilation (repeatable)")
	replCmd.Flags().String("globals", "", "inline declarations visible to every unit")
	replCmd.Flags().String("lang", "", "language-version tag (e.g. go1.24)")
}

func runRepl(cmd *cobra.Command, args []string) error {
	if _, err := config.Init("."); err != nil {
		return err
	}

	opts, err := checkerOptions(cmd)
	if err != nil {
		return err
	}
	typeName, err := cmd.Flags().GetString("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}

	c, err := checker.New(opts)
	if err != nil {
		return err
	}

	// One checker, driven strictly from the UI's command goroutine.
	model := ui.NewRepl(func(snippet string) (bool, []string, error) {
		v, err := c.Run(snippet, typeName)
		if err != nil {
			return false, nil, err
		}
		return v.Valid, v.Messages, nil
	})

	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("repl terminated: %w", err)
	}
	return nil
}
