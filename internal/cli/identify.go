package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarscope/pkg/pipeline"
	"github.com/matzehuels/jarscope/pkg/render"
)

type identifyOpts struct {
	json bool
	pick bool
}

// identifyCommand creates the "identify" command.
func (c *CLI) identifyCommand() *cobra.Command {
	var opts identifyOpts

	cmd := &cobra.Command{
		Use:   "identify <jar>...",
		Short: "Identify archives by their SHA-1 checksum",
		Long: `Identify computes the SHA-1 of each archive and looks it up in the checksum
index. An archive may match several artifacts (relocations, repackaged
builds); all candidates are listed.

With --pick, a single archive with several candidates opens an interactive
selector and the chosen artifact's dependencies are printed.`,
		Example: `  jarscope identify lib/guava-33.0.0-jre.jar
  jarscope identify --json lib/*.jar
  jarscope identify --pick vendor/unknown.jar`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.pick && len(args) != 1 {
				return fmt.Errorf("--pick takes exactly one archive")
			}
			return c.runIdentify(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose among candidates interactively and resolve the choice")

	return cmd
}

func (c *CLI) runIdentify(cmd *cobra.Command, paths []string, opts identifyOpts) error {
	ctx := cmd.Context()
	e, err := c.newEngine(ctx, c.config)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	ids := make([]*pipeline.Identity, 0, len(paths))
	for _, p := range paths {
		id, err := e.runner.Identify(ctx, p)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ids)
	}

	if opts.pick {
		return c.pickAndResolve(cmd, e, ids[0])
	}

	for _, id := range ids {
		writeIdentity(out, id)
	}
	return nil
}

func writeIdentity(w io.Writer, id *pipeline.Identity) {
	printKeyValue(w, "archive", id.Path)
	printKeyValue(w, "sha1", id.Checksum.Hex())
	if len(id.Candidates) == 0 {
		printKeyValue(w, "artifact", StyleWarning.Render("unknown"))
		fmt.Fprintln(w)
		return
	}
	for i, a := range id.Candidates {
		key := ""
		if i == 0 {
			key = "artifact"
		}
		printKeyValue(w, key, StyleHighlight.Render(a.Coordinates()))
	}
	fmt.Fprintln(w)
}

func (c *CLI) pickAndResolve(cmd *cobra.Command, e *engine, id *pipeline.Identity) error {
	switch len(id.Candidates) {
	case 0:
		printWarning("%s is not in the checksum index", id.Path)
		return nil
	case 1:
		printInfo("%s is %s", id.Path, id.Candidates[0])
		return c.printDependencies(cmd, e, id.Candidates[0], render.FormatText)
	}

	chosen, err := pickCandidate(id.Path, id.Candidates)
	if err != nil {
		return err
	}
	if chosen == nil {
		return nil
	}
	return c.printDependencies(cmd, e, *chosen, render.FormatText)
}
