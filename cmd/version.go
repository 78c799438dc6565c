package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RichMorin/dtags/internal/version"
)

var versionFormat string

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json)")
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()

	switch versionFormat {
	case "json":
		return renderJSON(info)
	case "text":
		fmt.Printf("dtags %s", info.Version)
		if info.GitCommit != "unknown" {
			fmt.Printf(" (%s)", info.GitCommit)
		}
		fmt.Println()
		fmt.Printf("Go: %s\n", info.GoVersion)
		fmt.Printf("Platform: %s\n", info.Platform)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", versionFormat)
	}
}
