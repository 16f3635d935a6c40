package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/depstack/resolvekit/pkg/coord"
)

// locateCommand creates the "locate" command.
func (c *CLI) locateCommand() *cobra.Command {
	var (
		artifact string
		typ      string
		ext      string
		asOfRaw  string
	)

	cmd := &cobra.Command{
		Use:   "locate ORG/MODULE@REVISION",
		Short: "Locate an artifact and print where it was found",
		Long: `Locate probes the repository for a single artifact and prints its URL,
size, and last-modified time. The artifact name defaults to the module
name, the type to "jar", and the extension to the type.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := artifactArg(args[0], artifact, typ, ext)
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

			sp := newWaitSpinner(cmd.Context(), "Probing repository...")
			sp.Start()
			found, err := res.FindArtifact(cmd.Context(), a, asOf)
			sp.Stop()
			if err != nil {
				return err
			}

			if found == nil {
				printWarning("Not found: %s", a.String())
				return nil
			}
			printSuccess("Found %s", a.String())
			printResource(found)
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "artifact name (default: module name)")
	cmd.Flags().StringVar(&typ, "type", "jar", "artifact type")
	cmd.Flags().StringVar(&ext, "ext", "", "artifact extension (default: type)")
	cmd.Flags().StringVar(&asOfRaw, "as-of", "", "skip candidates modified after this RFC3339 time")

	return cmd
}

// existsCommand creates the "exists" command.
func (c *CLI) existsCommand() *cobra.Command {
	var (
		artifact string
		typ      string
		ext      string
	)

	cmd := &cobra.Command{
		Use:   "exists ORG/MODULE@REVISION",
		Short: "Probe whether an artifact exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := artifactArg(args[0], artifact, typ, ext)
			if err != nil {
				return err
			}

			res, err := c.newResolver(cmd)
			if err != nil {
				return err
			}

			ok, err := res.Exists(cmd.Context(), a)
			if err != nil {
				return err
			}
			if ok {
				printSuccess("%s exists", a.String())
			} else {
				printWarning("%s does not exist", a.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "artifact name (default: module name)")
	cmd.Flags().StringVar(&typ, "type", "jar", "artifact type")
	cmd.Flags().StringVar(&ext, "ext", "", "artifact extension (default: type)")

	return cmd
}

// artifactArg builds an artifact coordinate from the positional module
// argument and the name/type/ext flags.
func artifactArg(coordinate, artifact, typ, ext string) (coord.Artifact, error) {
	mid, err := coord.ParseModuleID(coordinate)
	if err != nil {
		return coord.Artifact{}, err
	}
	a := coord.Artifact{ModuleID: mid, Name: artifact, Type: typ, Ext: ext}
	if a.Name == "" {
		a.Name = mid.Module
	}
	if a.Ext == "" {
		a.Ext = a.Type
	}
	return a, nil
}

func parseAsOf(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
