package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slide-sheets",
	Short: "Lay out presentation slides as printable handout sheets",
	Long: `Slide Sheets rasterizes slide decks (PDF or images) and tiles their pages
onto printable sheets: a grid of slides per page, grouped with independent
layouts, with optional labels, watermarks, headers, page numbers and
rotation of every other page for binder printing.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
