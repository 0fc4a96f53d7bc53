package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/slide-sheets/internal/config"
	"github.com/kozaktomas/slide-sheets/internal/job"
	"github.com/kozaktomas/slide-sheets/internal/raster"
)

// addJobFlags registers the flags shared by render and plan. Layout flags
// replace the configured defaults; a job file can still override them per
// group.
func addJobFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringSliceP("input", "i", nil, "Slide deck (PDF, image or directory of images), instead of a job file")
	f.String("title", "", "Document title")
	f.String("page-size", "", "Page size: A4, A3, Letter or Legal")
	f.String("orientation", "", "Page orientation: portrait or landscape")
	f.Int("columns", 0, "Slides per row")
	f.Int("rows", 0, "Slides per column")
	f.Float64("spacing", 0, "Space between slides in points")
	f.String("fit", "", "Image fit: contain or cover")
	f.String("quality", "", "Image quality: low, medium or high")
	f.Int("rotation", 0, "Rotate slides by 0, 90, 180 or 270 degrees")
	f.Bool("no-border", false, "Do not frame slides")
	f.Bool("no-labels", false, "Do not label slides")
	f.String("watermark", "", "Watermark text on every page")
	f.Bool("page-numbers", false, "Print page numbers")
	f.Bool("binder", false, "Rotate every even page by 180 degrees for binder printing")
	f.Int("dpi", 0, "PDF rasterization resolution (default from SHEETS_RENDER_DPI)")
	f.Int("workers", 0, "Documents decoded in parallel (default from SHEETS_DECODE_WORKERS)")
	f.Bool("json", false, "Output as JSON")
}

// layoutSettings applies the layout flags that were set on top of defaults.
func layoutSettings(cmd *cobra.Command, defaults config.GroupSettings) config.GroupSettings {
	s := defaults
	changed := cmd.Flags().Changed
	if changed("page-size") {
		s.PageSize = mustGetString(cmd, "page-size")
	}
	if changed("orientation") {
		s.Orientation = mustGetString(cmd, "orientation")
	}
	if changed("columns") {
		s.Columns = mustGetInt(cmd, "columns")
	}
	if changed("rows") {
		s.Rows = mustGetInt(cmd, "rows")
	}
	if changed("spacing") {
		s.Spacing = mustGetFloat64(cmd, "spacing")
	}
	if changed("fit") {
		s.Fit = mustGetString(cmd, "fit")
	}
	if changed("quality") {
		s.Quality = mustGetString(cmd, "quality")
	}
	if changed("rotation") {
		s.Rotation = mustGetInt(cmd, "rotation")
	}
	if mustGetBool(cmd, "no-border") {
		s.Border = false
	}
	if mustGetBool(cmd, "no-labels") {
		s.Numbering = false
	}
	return s
}

// loadJob reads the job file given as argument, or builds one from --input.
func loadJob(cmd *cobra.Command, cfg *config.Config, args []string) (*job.Job, error) {
	inputs := mustGetStringSlice(cmd, "input")
	settings := layoutSettings(cmd, cfg.Defaults)

	var j *job.Job
	var err error
	switch {
	case len(args) > 0 && len(inputs) > 0:
		return nil, errors.New("use either a job file or --input, not both")
	case len(args) > 0:
		j, err = job.Load(args[0], settings)
	case len(inputs) > 0:
		j, err = job.FromFiles(mustGetString(cmd, "title"), inputs, settings)
	default:
		return nil, errors.New("a job file or at least one --input is required")
	}
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("title") {
		j.Title = mustGetString(cmd, "title")
	}
	if changed("watermark") {
		j.Options.Watermark = mustGetString(cmd, "watermark")
	}
	if changed("page-numbers") {
		j.Options.PageNumbers = mustGetBool(cmd, "page-numbers")
	}
	if changed("binder") {
		j.Options.BinderRotation = mustGetBool(cmd, "binder")
	}
	return j, nil
}

// decodeDocuments rasterizes every document of the job.
func decodeDocuments(ctx context.Context, cmd *cobra.Command, cfg *config.Config, j *job.Job, showProgress bool) (*raster.Library, error) {
	dpi := cfg.Render.DPI
	if v := mustGetInt(cmd, "dpi"); v > 0 {
		dpi = v
	}
	workers := cfg.Render.Workers
	if v := mustGetInt(cmd, "workers"); v > 0 {
		workers = v
	}

	dec := raster.AutoDecoder{PDF: raster.PopplerDecoder{Path: cfg.Render.PdftoppmPath, DPI: dpi}}
	sources := j.Sources()

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(sources),
			progressbar.OptionSetDescription("Decoding documents"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("docs"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
		)
	}

	lib, err := raster.DecodeAll(ctx, dec, sources, workers, func(src raster.Source, pages int, err error) {
		if bar != nil {
			bar.Add(1)
		}
	})
	if bar != nil {
		fmt.Println()
	}
	if err != nil {
		return nil, fmt.Errorf("decoding documents: %w", err)
	}
	return lib, nil
}

func outputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// printWarnings prints layout warnings below a summary.
func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Printf("\nWarnings: %d\n", len(warnings))
	for _, w := range warnings {
		fmt.Printf("  - %s\n", w)
	}
}
