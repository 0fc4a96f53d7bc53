package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/slide-sheets/internal/config"
	"github.com/kozaktomas/slide-sheets/internal/layout"
)

var renderCmd = &cobra.Command{
	Use:   "render [job.yaml]",
	Short: "Render slide decks into a printable PDF",
	Long: `Render slide decks into a printable PDF.

Either pass a job file (YAML or JSON) describing documents, groups and their
layouts, or list decks with --input to lay out all their pages in one group.

Examples:
  slide-sheets render lecture.yaml -o lecture-handout.pdf
  slide-sheets render -i week1.pdf -i week2.pdf --columns 2 --rows 3 --orientation portrait
  slide-sheets render course.yaml --binder --page-numbers --report report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	addJobFlags(renderCmd)
	renderCmd.Flags().StringP("output", "o", "handout.pdf", "Output PDF file")
	renderCmd.Flags().String("report", "", "Write the layout report as JSON to this file")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	jsonOutput := mustGetBool(cmd, "json")
	output := mustGetString(cmd, "output")
	reportPath := mustGetString(cmd, "report")

	j, err := loadJob(cmd, cfg, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	lib, err := decodeDocuments(ctx, cmd, cfg, j, !jsonOutput)
	if err != nil {
		return err
	}
	groups, opts, err := j.Build(lib, cfg.Render.LabelLength)
	if err != nil {
		return err
	}

	pdf, report, err := layout.RenderDocument(groups, lib, opts)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if err := os.WriteFile(output, pdf, 0o644); err != nil { //nolint:gosec // output is meant to be readable
		return fmt.Errorf("writing %s: %w", output, err)
	}
	if reportPath != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		if err := os.WriteFile(reportPath, data, 0o644); err != nil { //nolint:gosec // report is meant to be readable
			return fmt.Errorf("writing %s: %w", reportPath, err)
		}
	}

	if jsonOutput {
		return outputJSON(report)
	}
	printRenderSummary(report, output, len(pdf))
	return nil
}

func printRenderSummary(report *layout.Report, output string, size int) {
	fmt.Printf("Wrote %s (%d KiB)\n", output, (size+1023)/1024)
	fmt.Printf("  Output pages: %d\n", report.PageCount)
	fmt.Printf("  Source pages: %d\n", report.SourcePages)
	fmt.Printf("  Paper saving: %.1f%%\n", report.PaperSaving)
	printWarnings(report.Warnings)
}
