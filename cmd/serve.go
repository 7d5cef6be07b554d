package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"scenemedia/be/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := server.NewApp(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.WithError(err).Warn("failed to close clients")
		}
	}()

	logger.WithField("port", cfg.Server.Port).Info("starting server")
	if err := app.Router().Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}
