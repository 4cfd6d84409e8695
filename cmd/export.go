package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-calendar/internal/config"
	"github.com/kozaktomas/photo-calendar/internal/render"
	"github.com/kozaktomas/photo-calendar/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <project-id>",
	Short: "Export a project to a print-ready PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", render.PDFFilename, "Output file path")
	exportCmd.Flags().Float64("dpi", 0, "Raster resolution for photos (defaults to config)")
	exportCmd.Flags().String("image-policy", "", "What a broken photo does: placeholder or abort")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	engine := render.New(render.FileLoader{}, cfg.Export.FontDir)
	engine.ExportDPI = cfg.Export.DPI
	if dpi := mustGetFloat64(cmd, "dpi"); dpi > 0 {
		engine.ExportDPI = dpi
	}
	policy := cfg.Export.ImagePolicy
	if flag := mustGetString(cmd, "image-policy"); flag != "" {
		policy = flag
	}
	if policy == string(render.PolicyAbort) {
		engine.Policy = render.PolicyAbort
	}

	output := mustGetString(cmd, "output")
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Rendering"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	report, err := engine.ExportPDF(context.Background(), p, f, func(frac float64) {
		_ = bar.Set(int(frac * 100))
	})
	if err != nil {
		return err
	}
	fmt.Println()

	fmt.Printf("Exported %d pages (%d photos) to %s\n", report.PageCount, report.PhotoCount, output)
	for _, warning := range report.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
	return nil
}
