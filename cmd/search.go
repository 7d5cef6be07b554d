package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"scenemedia/be/internal/search"
	"scenemedia/be/internal/server"
)

var orientation string

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [scene]",
	Short: "Search images and videos for a scene and print the combined result as JSON",
	Long: `Run one combined search without starting the server.

Examples:
  scenemedia search "a quiet lake at dawn"
  scenemedia search "city traffic at night" --orientation vertical`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		app, err := server.NewApp(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer app.Close()

		result, err := app.Search.Search(cmd.Context(), search.NewRequest(args[0], orientation))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	searchCmd.Flags().StringVarP(&orientation, "orientation", "o", string(search.OrientationAll), "image orientation: all, horizontal or vertical")
	rootCmd.AddCommand(searchCmd)
}
