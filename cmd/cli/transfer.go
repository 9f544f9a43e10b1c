package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lifeos/adapters/excel"
	"lifeos/adapters/yamlio"
	"lifeos/domain/core"
	"lifeos/internal/container"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data to a YAML or Excel file",
		Long: `Export check-ins, day statuses, self-expression logs, journal entries and
goals. Excel exports also carry the current weekly insights sheet.

Without --out the file is written to EXPORT_DIR as lifeos-<today>.<format>.

Example: lifeos export --format xlsx --out backup.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "yaml" && format != "xlsx" {
				return fmt.Errorf("invalid --format %q: use yaml or xlsx", format)
			}

			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				path := out
				if path == "" {
					path = defaultExportPath(c.Config.Export.Dir, c.Engine.Today(), format)
				}
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return fmt.Errorf("failed to create export directory: %w", err)
				}

				snap, err := c.Transfer.Export(ctx)
				if err != nil {
					return err
				}

				switch format {
				case "xlsx":
					summary, err := c.Insights.WeeklySummary(ctx)
					if err != nil {
						return err
					}
					err = excel.NewWriter(&summary).WriteFile(path, snap)
					if err != nil {
						return err
					}
				default:
					if err := yamlio.WriteFile(path, snap); err != nil {
						return err
					}
				}

				fmt.Printf("%s exported %s to %s\n", success("✓"), snap.Counts(), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Export format: yaml|xlsx")
	cmd.Flags().StringVar(&out, "out", "", "Output file path")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import a YAML, Excel, CSV or browser dump snapshot",
		Long: `Merge a previously exported snapshot into the database. Check-ins and
statuses are replaced per day; journal entries and goals are matched by ID.
A .json file is read as a dump of the browser app's storage.

Example: lifeos import backup.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				snap, err := container.ReadSnapshotFile(args[0], c.Config.Insights.Location)
				if err != nil {
					return err
				}

				counts, err := c.Transfer.Import(ctx, snap)
				if err != nil {
					return err
				}

				fmt.Printf("%s imported %s\n", success("✓"), counts)
				return nil
			})
		},
	}
}

func defaultExportPath(dir string, today core.Day, format string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, fmt.Sprintf("lifeos-%s.%s", today, format))
}
