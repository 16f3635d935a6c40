package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// listCommand creates the "list" command group.
func (c *CLI) listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Enumerate repository contents",
		Long: `List enumerates modules and revisions from the repository's directory
indexes. What can be enumerated depends on the resolver type and layout:
the ibiblio resolver never enumerates organisations, and only enumerates
modules under the Maven2 layout.`,
	}

	cmd.AddCommand(c.listModulesCommand())
	cmd.AddCommand(c.listRevisionsCommand())

	return cmd
}

// listModulesCommand creates the "list modules" subcommand.
func (c *CLI) listModulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modules ORGANISATION",
		Short: "List an organisation's modules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.newResolver(cmd)
			if err != nil {
				return err
			}

			mods, err := res.ListModules(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(mods) == 0 {
				printInfo("No modules listed for %s", args[0])
				return nil
			}
			for _, m := range mods {
				printListEntry(m)
			}
			return nil
		},
	}
}

// listRevisionsCommand creates the "list revisions" subcommand.
func (c *CLI) listRevisionsCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "revisions ORGANISATION MODULE",
		Short: "List a module's revisions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.newResolver(cmd)
			if err != nil {
				return err
			}

			revs, err := res.ListRevisions(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if len(revs) == 0 {
				printInfo("No revisions listed for %s/%s", args[0], args[1])
				return nil
			}

			if !interactive {
				for _, r := range revs {
					printListEntry(r)
				}
				return nil
			}

			model := newRevisionListModel(args[0], args[1], revs)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			picked, ok := final.(revisionListModel)
			if !ok || picked.selected == "" {
				return nil
			}
			printSuccess("Selected %s/%s@%s", args[0], args[1], picked.selected)
			printNextStep("Locate it", "resolvekit locate "+args[0]+"/"+args[1]+"@"+picked.selected+" --m2")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a revision interactively")

	return cmd
}
