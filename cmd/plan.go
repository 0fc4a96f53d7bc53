package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/slide-sheets/internal/config"
	"github.com/kozaktomas/slide-sheets/internal/fingerprint"
	"github.com/kozaktomas/slide-sheets/internal/layout"
	"github.com/kozaktomas/slide-sheets/internal/raster"
)

var planCmd = &cobra.Command{
	Use:   "plan [job.yaml]",
	Short: "Show how slides would be laid out without writing a PDF",
	Long: `Decode the documents of a job and print the planned pages: which slides
land on which sheet, empty cells, low resolution warnings, and consecutive
slides that are nearly identical (animation builds you may want to drop).

Examples:
  slide-sheets plan lecture.yaml
  slide-sheets plan -i slides.pdf --columns 3 --rows 3 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	addJobFlags(planCmd)
	planCmd.Flags().Int("threshold", fingerprint.DefaultThreshold, "Maximum hash distance for near-identical slides")
}

// planOutput is the JSON form of a plan.
type planOutput struct {
	Report         *layout.Report         `json:"report"`
	NearDuplicates []raster.NearDuplicate `json:"near_duplicates"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	jsonOutput := mustGetBool(cmd, "json")
	threshold := mustGetInt(cmd, "threshold")

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

	plan, err := layout.PlanDocument(groups, lib, opts)
	if err != nil {
		return fmt.Errorf("planning: %w", err)
	}
	out := planOutput{
		Report:         layout.NewReport(plan, opts),
		NearDuplicates: lib.FindNearDuplicates(j.DocumentIDs(), threshold),
	}

	if jsonOutput {
		return outputJSON(out)
	}
	printPlan(out)
	return nil
}

func printPlan(out planOutput) {
	r := out.Report
	for _, page := range r.Pages {
		entries := make([]string, len(page.Cells))
		for i, c := range page.Cells {
			entries[i] = c.Entry
		}
		fmt.Printf("Page %d  %s #%d  %.0fx%.0f pt", page.PageNumber, page.Group, page.GroupPage, page.Width, page.Height)
		if page.Rotated {
			fmt.Print("  rotated")
		}
		if page.EmptyCells > 0 {
			fmt.Printf("  %d empty", page.EmptyCells)
		}
		fmt.Printf("\n  %s\n", strings.Join(entries, " "))
	}

	fmt.Printf("\n%d output pages for %d source pages (%.1f%% less paper)\n", r.PageCount, r.SourcePages, r.PaperSaving)
	printWarnings(r.Warnings)

	if len(out.NearDuplicates) > 0 {
		fmt.Printf("\nNearly identical consecutive slides: %d\n", len(out.NearDuplicates))
		for _, d := range out.NearDuplicates {
			fmt.Printf("  - %s: pages %d and %d (distance %d)\n", d.Document, d.First, d.Second, d.Distance)
		}
	}
}
