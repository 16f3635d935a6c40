package cli

import (
	"github.com/spf13/cobra"

	"github.com/depstack/resolvekit/pkg/coord"
)

// resolveCommand creates the "resolve" command.
func (c *CLI) resolveCommand() *cobra.Command {
	var asOfRaw string

	cmd := &cobra.Command{
		Use:   "resolve ORG/MODULE@REVISION",
		Short: "Resolve a module revision",
		Long: `Resolve looks a module revision up by its descriptor when the Maven2
layout with POM lookups is active, falling back to probing for the
module's jar artifact otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mid, err := coord.ParseModuleID(args[0])
			if err != nil {
				return err
			}
			asOf, err := parseAsOf(asOfRaw)
			if err != nil {
				return err
			}

			res, err := c.newResolver(cmd)
			if err != nil {
				return err
			}

			sp := newWaitSpinner(cmd.Context(), "Resolving...")
			sp.Start()
			rm, err := res.GetDependency(cmd.Context(), mid, asOf)
			sp.Stop()
			if err != nil {
				return err
			}

			if rm == nil {
				printWarning("Not found: %s", mid.String())
				return nil
			}

			via := "artifact probe"
			if rm.Descriptor {
				via = "descriptor"
			}
			printSuccess("Resolved %s", mid.String())
			printKeyValue("via", via)
			printResource(rm.Resource)
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfRaw, "as-of", "", "skip candidates modified after this RFC3339 time")

	return cmd
}
