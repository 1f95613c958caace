package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/render"
)

type depsOpts struct {
	format string
	output string
}

// depsCommand creates the "deps" command.
func (c *CLI) depsCommand() *cobra.Command {
	var opts depsOpts

	formats := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		formats = append(formats, string(f))
	}

	cmd := &cobra.Command{
		Use:   "deps <groupId:artifactId:version[:packaging]>",
		Short: "List the direct dependencies declared in an artifact's POM",
		Long: `Deps downloads (or reads from the local repository) the POM of the given
artifact, evaluates its properties and dependency management, and prints the
declared dependencies. Dependencies from the artifact's own group come
first, then ancestor and descendant groups, then everything else.`,
		Example: `  jarscope deps org.apache.commons:commons-lang3:3.14.0
  jarscope deps --format json com.google.guava:guava:33.0.0-jre
  jarscope deps --format svg -o guava.svg com.google.guava:guava:33.0.0-jre`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := artifact.Parse(args[0])
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			e, err := c.newEngine(cmd.Context(), c.config)
			if err != nil {
				return err
			}
			defer e.Close()

			if opts.output == "" {
				return c.printDependencies(cmd, e, a, format)
			}
			return c.writeDependencies(cmd, e, a, format, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatText),
		"output format ("+strings.Join(formats, ", ")+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) resolve(cmd *cobra.Command, e *engine, a artifact.Artifact) (render.Result, error) {
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(cmd.Context(), "Resolving "+a.Coordinates()+"...")
	if !c.verbose {
		spinner.Start()
	}
	deps, err := e.runner.Dependencies(cmd.Context(), a)
	spinner.Stop()
	if err != nil {
		return render.Result{}, err
	}
	prog.done("Resolved %d dependencies of %s", len(deps), a)
	return render.Result{Artifact: a, Dependencies: deps}, nil
}

func (c *CLI) printDependencies(cmd *cobra.Command, e *engine, a artifact.Artifact, format render.Format) error {
	result, err := c.resolve(cmd, e, a)
	if err != nil {
		return err
	}
	return render.Write(cmd.OutOrStdout(), format, result)
}

func (c *CLI) writeDependencies(cmd *cobra.Command, e *engine, a artifact.Artifact, format render.Format, path string) error {
	result, err := c.resolve(cmd, e, a)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render.Write(&buf, format, result); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Wrote %d dependencies of %s", len(result.Dependencies), a)
	printFile(path)
	return nil
}
