package cli

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarscope/pkg/pipeline"
)

type auditOpts struct {
	json    bool
	workers int
}

// auditCommand creates the "audit" command.
func (c *CLI) auditCommand() *cobra.Command {
	var opts auditOpts

	cmd := &cobra.Command{
		Use:   "audit <jar|dir>...",
		Short: "Identify a set of archives and resolve each one's dependencies",
		Long: `Audit identifies every archive given (directories are searched recursively
for .jar files) and resolves the direct dependencies of the first candidate
of each. Archives are processed concurrently; a failure on one archive is
reported in its row and does not stop the others.

The command exits non-zero if any archive failed.`,
		Example: `  jarscope audit lib/
  jarscope audit --json --workers 16 build/libs/*.jar`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAudit(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print reports as JSON")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "archives processed concurrently (default from config)")

	return cmd
}

func (c *CLI) runAudit(cmd *cobra.Command, args []string, opts auditOpts) error {
	paths, err := collectArchives(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		printWarning("No archives found")
		return nil
	}

	ctx := cmd.Context()
	e, err := c.newEngine(ctx, c.config)
	if err != nil {
		return err
	}
	defer e.Close()

	if opts.workers > 0 {
		e.runner.Workers = opts.workers
	}

	total := len(paths)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Auditing 0/%d archives...", total))
	var done atomic.Int64
	e.runner.OnReport = func(pipeline.Report) {
		spinner.Update(fmt.Sprintf("Auditing %d/%d archives...", done.Add(1), total))
	}
	if !c.verbose && !opts.json {
		spinner.Start()
	}

	prog := newProgress(c.Logger)
	reports := e.runner.Audit(ctx, paths)
	spinner.Stop()
	if err := ctx.Err(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	summary := pipeline.Summarize(reports)
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, auditTable(reports))
		printSuccess("Audited %d archives in %s", total, prog.elapsed())
		printDetail("%s", summary)
	}

	if n := summary[pipeline.StatusFailed]; n > 0 {
		return fmt.Errorf("%d of %d archives failed", n, total)
	}
	return nil
}

// collectArchives expands directories into the .jar files beneath them.
// Files named explicitly are kept whatever their extension. The result
// preserves argument order, with each directory's files in lexical order.
func collectArchives(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".jar") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}
