package cmd

import (
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/ghostwriter/internal/archive"
	"github.com/spf13/cobra"
)

func newSamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Manage archived writing samples",
		Long: `Tools for building and inspecting writing sample archives.

Archives hold collected samples in Parquet or JSON Lines format so a corpus
of your letters can be reused across generation runs.`,
	}

	cmd.AddCommand(newSamplesExportCmd())
	cmd.AddCommand(newSamplesShowCmd())

	return cmd
}

func newSamplesExportCmd() *cobra.Command {
	var (
		dir    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Collect .txt samples from a directory into an archive",
		Example: `  # Build a Parquet archive from a directory of letters
  ghostwriter samples export --dir ./letters --output samples.parquet

  # JSON Lines works too
  ghostwriter samples export --dir ./letters --output samples.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := archive.CollectDir(dir)
			if err != nil {
				return err
			}
			if err := archive.Save(output, records); err != nil {
				return err
			}
			slog.Info("Exported samples", "count", len(records), "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory containing .txt writing samples")
	cmd.Flags().StringVarP(&output, "output", "o", "samples.parquet", "Archive path (.parquet or .jsonl)")

	return cmd
}

func newSamplesShowCmd() *cobra.Command {
	var (
		input string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print samples from an archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := archive.Load(input)
			if err != nil {
				return err
			}
			shown := records
			if limit > 0 && limit < len(records) {
				shown = records[:limit]
			}
			for _, record := range shown {
				cmd.Printf("=== %s (%s)\n%s\n\n", record.Source, record.ID, strings.TrimSpace(record.Text))
			}
			cmd.Printf("%d of %d samples\n", len(shown), len(records))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "samples.parquet", "Archive path (.parquet or .jsonl)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Show at most this many samples (0 = all)")

	return cmd
}
