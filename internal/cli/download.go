package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depstack/resolvekit/pkg/coord"
	"github.com/depstack/resolvekit/pkg/errors"
	"github.com/depstack/resolvekit/pkg/repo"
)

// downloadCommand creates the "download" command.
func (c *CLI) downloadCommand() *cobra.Command {
	var (
		dest      string
		typ       string
		useOrigin bool
	)

	cmd := &cobra.Command{
		Use:   "download ORG/MODULE@REVISION...",
		Short: "Fetch artifacts into a local directory",
		Long: `Download locates each artifact and copies it into the destination
directory. With --use-origin, artifacts are located but left at their
origin URL; the report then carries URLs instead of local paths.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artifacts := make([]coord.Artifact, 0, len(args))
			for _, arg := range args {
				a, err := artifactArg(arg, "", typ, "")
				if err != nil {
					return err
				}
				artifacts = append(artifacts, a)
			}

			res, err := c.newResolver(cmd)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			sp := newWaitSpinner(cmd.Context(), "Downloading...")
			sp.Start()
			report, err := res.Download(cmd.Context(), artifacts, dest, useOrigin)
			sp.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Processed %d artifacts", len(report.Entries)))

			for _, e := range report.Entries {
				printDownloadEntry(e)
			}
			if report.Failed() {
				return errors.New(errors.ErrCodeInternal, "one or more downloads failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", ".", "destination directory")
	cmd.Flags().StringVar(&typ, "type", "jar", "artifact type")
	cmd.Flags().BoolVar(&useOrigin, "use-origin", false, "locate artifacts without copying them")

	return cmd
}

// printDownloadEntry prints a single download report entry.
func printDownloadEntry(e repo.DownloadEntry) {
	switch e.Status {
	case repo.StatusDownloaded:
		printSuccess("%s (%d bytes)", e.Artifact.String(), e.Bytes)
		printFile(e.Path)
	case repo.StatusOrigin:
		printSuccess("%s", e.Artifact.String())
		printDetail("origin: %s", e.URL)
	case repo.StatusMissing:
		printWarning("%s: not found", e.Artifact.String())
	default:
		printError("%s: %s", e.Artifact.String(), e.Error)
	}
}
