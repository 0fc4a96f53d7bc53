package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/slide-sheets/internal/pdfout"
)

const mmPerPoint = 25.4 / 72

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Print page count, page sizes and validation result of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("json", false, "Output as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	info, err := pdfout.InspectFile(args[0])
	if err != nil {
		return err
	}
	if mustGetBool(cmd, "json") {
		return outputJSON(info)
	}

	fmt.Printf("File:  %s\n", args[0])
	fmt.Printf("Pages: %d\n", info.PageCount)
	for _, p := range info.Pages {
		fmt.Printf("  %3d  %7.2f x %7.2f pt  (%.0f x %.0f mm)\n",
			p.Number, p.Width, p.Height, p.Width*mmPerPoint, p.Height*mmPerPoint)
	}
	if info.Valid() {
		fmt.Println("Valid: yes")
	} else {
		fmt.Printf("Valid: no (%s)\n", info.ValidationError)
	}
	return nil
}
