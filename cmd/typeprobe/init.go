package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"typeprobe/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter typeprobe.toml",
	Long: `Create a typeprobe.toml manifest in the given directory (or the current
one) holding the process-wide defaults: declaration paths, verbosity, and
the language-version tag.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const manifestTemplate = `[check]
# lang_version = "go1.24"
verbose = false

[declarations]
# Declaration files included in every compilation, relative to this file.
paths = []
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 && args[0] != "" {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(abs); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", abs)
	}

	manifest := filepath.Join(abs, config.ManifestName)
	if _, err := os.Stat(manifest); err == nil {
		return fmt.Errorf("%s already exists", manifest)
	}

	if err := os.WriteFile(manifest, []byte(manifestTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifest, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", manifest)
	return nil
}
