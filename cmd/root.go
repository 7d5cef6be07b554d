package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"scenemedia/be/internal/config"
	"scenemedia/be/internal/logging"
	"scenemedia/be/internal/server"
)

var (
	configPath string
	envPath    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scenemedia",
	Short: "Find stock images and videos for a piece of scene text",
	Long: `scenemedia turns a scene description into search keywords and looks up
matching images and videos on Pixabay.

Examples:
  scenemedia                 # start the HTTP server
  scenemedia serve
  scenemedia search "a quiet lake at dawn" --orientation horizontal`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "path to the yaml config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "config/.env", "path to the .env file")
}

func loadConfig() (*config.Config, logging.Logger, error) {
	cfg, err := config.LoadConfig(configPath, envPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.NewLoggerWithService(server.ServiceName, cfg.Log.Level), nil
}
