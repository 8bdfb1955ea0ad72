package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/menusolver/internal/server"
	"github.com/matzehuels/menusolver/pkg/menu"
	"github.com/matzehuels/menusolver/pkg/solver"
)

// serveCommand creates the serve command, which exposes a live store over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, policy string

	cmd := &cobra.Command{
		Use:   "serve [files...]",
		Short: "Serve a live menu store over HTTP",
		Long: `Serve starts an HTTP server over an in-memory store seeded with the given
manifests. Contributions can then be added with POST /contributions and removed
with DELETE /contributions/{id}; GET /menu returns the current tree.`,
		Example: `  menusolver serve core.toml --addr :7380
  curl -X POST --data @plugin.json localhost:7380/contributions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.config.Addr
			}
			p, err := c.policyFlag(cmd, policy)
			if err != nil {
				return err
			}

			st, err := newStore(cmd.Context(), args, p)
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			cancel := st.Subscribe(func(r *solver.Result) {
				leaves, submenus := menu.Count(r.Nodes)
				logger.Info("menu updated", "leaves", leaves, "submenus", submenus, "diagnostics", len(r.Diagnostics))
			})
			defer cancel()

			return server.New(st, logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&policy, "policy", solver.PolicyNameSubmenuWins, "ambiguity policy: submenu-wins, report")

	return cmd
}
