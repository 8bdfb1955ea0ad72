package cli

import (
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/menusolver/pkg/io"
	"github.com/matzehuels/menusolver/pkg/menu"
	"github.com/matzehuels/menusolver/pkg/solver"
)

// checkCommand creates the check command, which lints a set of manifests.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Report conflicts between contribution manifests",
		Long: `Check resolves the manifests with the report policy and lists every
diagnostic: skipped declarations, broken ordering cycles and leaves hidden by a
submenu of the same name. Items that resolve but break authoring rules, such as
a command id with whitespace, are reported as warnings.

Exits non-zero when any leaf is hidden.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			lint := func(path string, items []*menu.Declaration) {
				for _, err := range pkgio.LintManifest(items) {
					printWarning(w, "%s: %v", path, err)
				}
			}
			st, err := newStore(cmd.Context(), args, solver.PolicyReport, lint)
			if err != nil {
				return err
			}

			res := st.Result()
			for _, d := range res.Diagnostics {
				switch d.Kind {
				case solver.DiagnosticAmbiguous:
					printError(w, "%s", d)
				case solver.DiagnosticMalformed:
					printWarning(w, "%s", d)
				default:
					printInfo(w, "%s", d)
				}
			}

			leaves, submenus := menu.Count(res.Nodes)
			printStats(w, leaves, submenus, len(res.Diagnostics))

			if err := res.Err(); err != nil {
				return err
			}
			printSuccess(w, "No conflicts")
			return nil
		},
	}
}
