package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"typeprobe/internal/checker"
	"typeprobe/internal/config"
	"typeprobe/internal/diagfmt"
	"typeprobe/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.go|directory]",
	Short: "Type-check a snippet, a snippet file, or a directory of snippet files",
	Long: `Check that Go snippets type-check against the configured reference and
declaration files. A directory is processed in parallel, one checker
instance per file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("expr", "e", "", "inline snippet to check instead of a file")
	checkCmd.Flags().String("ref", "", "reference file whose type declarations become selectable")
	checkCmd.Flags().String("type", "", "restrict the unit to this named type from the reference")
	checkCmd.Flags().StringArray("decls", nil, "declaration file included in every compilation (repeatable)")
	checkCmd.Flags().String("globals", "", "inline declarations visible to every unit")
	checkCmd.Flags().String("lang", "", "language-version tag (e.g. go1.24)")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("invert", false, "expect snippets to fail type-checking")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

type checkTarget struct {
	label   string
	snippet string
}

type checkResult struct {
	label   string
	verdict checker.Verdict
	failed  bool
	failMsg string
}

func runCheck(cmd *cobra.Command, args []string) error {
	if _, err := config.Init("."); err != nil {
		return err
	}

	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	invert, err := cmd.Flags().GetBool("invert")
	if err != nil {
		return fmt.Errorf("failed to get invert flag: %w", err)
	}
	typeName, err := cmd.Flags().GetString("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if verbose, err := cmd.Root().PersistentFlags().GetBool("verbose"); err == nil && verbose {
		config.SetVerbose(true)
	}

	opts, err := checkerOptions(cmd)
	if err != nil {
		return err
	}

	targets, err := collectTargets(expr, args)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return errors.New("nothing to check: pass -e or a file/directory")
	}

	results := make([]checkResult, len(targets))
	g := new(errgroup.Group)
	g.SetLimit(workerCount(jobs))
	for i, target := range targets {
		g.Go(func() error {
			// Checker instances are single-threaded; each target gets
			// its own.
			c, err := checker.New(opts)
			if err != nil {
				return err
			}
			res, err := runTarget(c, target, typeName, invert)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	anyFailed := render(cmd, results, format)
	if anyFailed {
		os.Exit(1)
	}
	return nil
}

func runTarget(c *checker.Checker, target checkTarget, typeName string, invert bool) (checkResult, error) {
	a, err := c.Assert(target.snippet, typeName)
	if err != nil {
		return checkResult{}, fmt.Errorf("%s: %w", target.label, err)
	}
	res := checkResult{label: target.label, verdict: a.Verdict()}
	var check error
	if invert {
		check = a.IsNotValid()
	} else {
		check = a.IsValid()
	}
	if check != nil {
		res.failed = true
		res.failMsg = check.Error()
	}
	return res, nil
}

func checkerOptions(cmd *cobra.Command) (checker.Options, error) {
	ref, err := cmd.Flags().GetString("ref")
	if err != nil {
		return checker.Options{}, fmt.Errorf("failed to get ref flag: %w", err)
	}
	decls, err := cmd.Flags().GetStringArray("decls")
	if err != nil {
		return checker.Options{}, fmt.Errorf("failed to get decls flag: %w", err)
	}
	globals, err := cmd.Flags().GetString("globals")
	if err != nil {
		return checker.Options{}, fmt.Errorf("failed to get globals flag: %w", err)
	}
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return checker.Options{}, fmt.Errorf("failed to get lang flag: %w", err)
	}
	return checker.Options{
		ReferencePath: ref,
		GlobalDecls:   globals,
		GlobalPaths:   decls,
		LangVersion:   lang,
	}, nil
}

func collectTargets(expr string, args []string) ([]checkTarget, error) {
	if expr != "" {
		return []checkTarget{{label: "<expr>", snippet: expr}}, nil
	}
	if len(args) == 0 {
		return nil, nil
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if !info.IsDir() {
		return readTargets([]string{path})
	}

	files, err := listSnippetFiles(path)
	if err != nil {
		return nil, err
	}
	return readTargets(files)
}

func readTargets(paths []string) ([]checkTarget, error) {
	host := source.DiskHost{}
	targets := make([]checkTarget, 0, len(paths))
	for _, p := range paths {
		content, err := host.ReadFile(p)
		if err != nil {
			return nil, err
		}
		targets = append(targets, checkTarget{label: p, snippet: string(content)})
	}
	return targets, nil
}

// listSnippetFiles returns every *.go file under dir, sorted for a
// deterministic report order.
func listSnippetFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".go") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func workerCount(jobs int) int {
	if jobs > 0 {
		return jobs
	}
	return runtime.NumCPU()
}

// render prints the results and reports whether any assertion failed.
func render(cmd *cobra.Command, results []checkResult, format string) bool {
	out := os.Stdout
	colorMode, _ := cmd.Root().PersistentFlags().GetString("color")
	useColor := resolveColor(colorMode, out)
	maxDiag, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	anyFailed := false
	if format == "json" {
		payload := make([]diagfmt.VerdictJSON, 0, len(results))
		for _, r := range results {
			if r.failed {
				anyFailed = true
			}
			v := diagfmt.VerdictJSON{Label: r.label, Valid: !r.failed}
			for _, msg := range capMessages(r.verdict.Messages, maxDiag) {
				v.Diagnostics = append(v.Diagnostics, diagfmt.DiagnosticJSON{
					Severity: "ERROR",
					Message:  msg,
				})
			}
			if r.failed && len(v.Diagnostics) == 0 {
				v.Diagnostics = append(v.Diagnostics, diagfmt.DiagnosticJSON{
					Severity: "ERROR",
					Message:  r.failMsg,
				})
			}
			payload = append(payload, v)
		}
		_ = diagfmt.WriteJSON(out, payload)
		return anyFailed
	}

	for _, r := range results {
		diagfmt.Summary(out, r.label, !r.failed, useColor)
		if !r.failed {
			continue
		}
		anyFailed = true
		msgs := capMessages(r.verdict.Messages, maxDiag)
		if len(msgs) == 0 {
			fmt.Fprintln(out, diagfmt.Indent(r.failMsg, "  "))
			continue
		}
		for _, msg := range msgs {
			fmt.Fprintln(out, diagfmt.Indent(msg, "  "))
		}
		if dropped := len(r.verdict.Messages) - len(msgs); dropped > 0 {
			fmt.Fprintf(out, "  ... and %d more diagnostics\n", dropped)
		}
	}
	return anyFailed
}

func capMessages(msgs []string, max int) []string {
	if max > 0 && len(msgs) > max {
		return msgs[:max]
	}
	return msgs
}
