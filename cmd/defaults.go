package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/slide-sheets/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default group layout settings",
	Long: `Print the layout settings used for every group that does not override
them. The YAML output can be pasted into the defaults section of a job file.`,
	Args: cobra.NoArgs,
	RunE: runDefaults,
}

func init() {
	rootCmd.AddCommand(defaultsCmd)

	defaultsCmd.Flags().Bool("json", false, "Output as JSON")
}

func runDefaults(cmd *cobra.Command, args []string) error {
	defaults := config.Load().Defaults
	if mustGetBool(cmd, "json") {
		return outputJSON(defaults)
	}

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(defaults); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}
	return encoder.Close()
}
