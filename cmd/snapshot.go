package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-calendar/internal/config"
	"github.com/kozaktomas/photo-calendar/internal/render"
	"github.com/kozaktomas/photo-calendar/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <project-id> <month>",
	Short: "Export one month's photo arrangement as a PNG",
	Long: `Export a single month (zero-based offset into the calendar span) as a
PNG image at the configured export resolution.`,
	Args: cobra.ExactArgs(2),
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringP("output", "o", "", "Output file path (defaults to calendar-YYYY-MM.png)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	st, err := store.New(cfg.Storage.DataDir)
	if err != nil {
		return err
	}
	p, err := st.LoadProject(args[0])
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("project %s not found in %s", args[0], cfg.Storage.DataDir)
	}

	month, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid month index %q", args[1])
	}

	engine := render.New(render.FileLoader{}, cfg.Export.FontDir)
	engine.ExportDPI = cfg.Export.DPI

	output := mustGetString(cmd, "output")
	if output == "" {
		output = render.SnapshotFilename(p, month)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := engine.ExportMonthPNG(context.Background(), p, month, f); err != nil {
		return err
	}
	fmt.Printf("Exported month %d to %s\n", month, output)
	return nil
}
