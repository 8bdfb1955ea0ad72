package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/menusolver/pkg/cache"
	"github.com/matzehuels/menusolver/pkg/errors"
	pkgio "github.com/matzehuels/menusolver/pkg/io"
	"github.com/matzehuels/menusolver/pkg/menu"
	"github.com/matzehuels/menusolver/pkg/render/nodelink"
	"github.com/matzehuels/menusolver/pkg/render/outline"
	"github.com/matzehuels/menusolver/pkg/solver"
)

// Output formats of the resolve command.
const (
	formatTree = "tree"
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	format   string // output format: tree, json, dot, svg
	policy   string // ambiguity policy name
	output   string // output file path; stdout when empty
	commands bool   // show command ids in tree output
	detailed bool   // show shortcuts and command ids in diagrams
	noCache  bool   // skip the rendered artifact cache
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	opts := resolveOpts{}

	cmd := &cobra.Command{
		Use:   "resolve [files...]",
		Short: "Resolve contribution manifests into a menu tree",
		Long: `Resolve loads each manifest file as one contribution batch and prints the
resolved menu.

Manifests may be TOML, YAML or JSON; the format follows the file extension.`,
		Example: `  menusolver resolve core.toml plugins/*.yaml
  menusolver resolve core.toml -f json -o menu.json
  menusolver resolve core.toml -f svg -o menu.svg --detailed`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = c.config.Format
			}
			policy, err := c.policyFlag(cmd, opts.policy)
			if err != nil {
				return err
			}

			st, err := newStore(cmd.Context(), args, policy)
			if err != nil {
				return err
			}
			artifacts := newCache(loggerFromContext(cmd.Context()), opts.noCache)
			defer artifacts.Close()

			data, err := renderMenu(cmd.Context(), artifacts, st.Menu(), opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, data)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTree, "output format: tree, json, dot, svg")
	cmd.Flags().StringVar(&opts.policy, "policy", solver.PolicyNameSubmenuWins, "ambiguity policy: submenu-wins, report")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.commands, "commands", false, "show command ids in tree output")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show shortcuts and command ids in diagrams")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rendered artifact cache")

	return cmd
}

// renderMenu encodes nodes in the requested format. SVG renders are looked up
// in artifacts first.
func renderMenu(ctx context.Context, artifacts cache.Cache, nodes []menu.Node, opts resolveOpts) ([]byte, error) {
	switch opts.format {
	case formatTree:
		return []byte(outline.Render(nodes, outline.Options{Commands: opts.commands}) + "\n"), nil
	case formatJSON:
		var buf bytes.Buffer
		if err := pkgio.WriteJSON(nodes, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatDOT:
		return []byte(nodelink.ToDOT(nodes, nodelink.Options{Detailed: opts.detailed})), nil
	case formatSVG:
		dot := nodelink.ToDOT(nodes, nodelink.Options{Detailed: opts.detailed})
		svg, cached, err := cache.GetOrCompute(ctx, artifacts, cache.ArtifactKey(formatSVG, []byte(dot)), 0, func() ([]byte, error) {
			spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
			spinner.Start()
			defer spinner.Stop()
			return nodelink.RenderSVGContext(ctx, dot)
		})
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		loggerFromContext(ctx).Debug("rendered svg", "cached", cached, "bytes", len(svg))
		return svg, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want tree, json, dot or svg)", opts.format)
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(w, path)
	return nil
}
