package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"scenemedia/be/internal/config"
	"scenemedia/be/internal/keyword"
	"scenemedia/be/internal/llm"
	"scenemedia/be/internal/logging"
	"scenemedia/be/internal/media"
	"scenemedia/be/internal/monitoring"
	"scenemedia/be/internal/provider"
	"scenemedia/be/internal/search"
)

const ServiceName = "scenemedia"

// App holds the wired services for one process.
type App struct {
	Config  *config.Config
	Logger  logging.Logger
	Metrics *monitoring.MetricsCollector
	Search  search.Service
	Media   media.Service

	closers []io.Closer
}

// NewApp wires every service from cfg. Optional collaborators (keyword model, storage)
// are left unconfigured when their credentials are absent.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	app := &App{
		Config:  cfg,
		Logger:  logging.OrDiscard(logger),
		Metrics: monitoring.NewMetricsCollector(ServiceName),
	}
	searchMetrics := app.Metrics.CreateSearchMetrics()

	aiProvider, err := app.newKeywordProvider(ctx)
	if err != nil {
		return nil, err
	}
	extractor := keyword.NewService(aiProvider, app.Logger)

	fetcher := provider.NewClient(provider.Config{
		MaxRetries: cfg.Pixabay.MaxRetries,
		BaseDelay:  cfg.Pixabay.RetryDelay,
		Timeout:    cfg.Pixabay.Timeout,
	}, app.Logger)

	app.Search = search.NewServiceImpl(extractor, fetcher, search.Config{
		APIKey:   cfg.Pixabay.APIKey,
		ImageURL: cfg.Pixabay.ImageURL,
		VideoURL: cfg.Pixabay.VideoURL,
		Language: cfg.Pixabay.Language,
		PageSize: cfg.Pixabay.PageSize,
	}, app.Logger, search.WithRecorder(searchMetrics))

	var store media.ObjectStore
	gcs, err := media.NewGCSStore(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsJSON)
	switch {
	case err == nil:
		store = gcs
		app.closers = append(app.closers, gcs)
		app.Logger.Info("object storage client initialized")
	default:
		app.Logger.WithError(err).Warn("object storage is not available, uploads are disabled")
	}
	app.Media = media.NewServiceImpl(store, searchMetrics, app.Logger)

	return app, nil
}

func (a *App) newKeywordProvider(ctx context.Context) (llm.AIProvider, error) {
	cfg := a.Config
	switch strings.ToLower(cfg.Keywords.Provider) {
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			a.Logger.Warn("openai API key missing, keyword extraction disabled")
			return nil, nil
		}
		return llm.NewOpenAIProvider(openai.NewClient(cfg.OpenAI.APIKey), cfg.OpenAI.Model), nil
	case "gemini":
		if cfg.GeminiAI.APIKey == "" {
			a.Logger.Warn("gemini API key missing, keyword extraction disabled")
			return nil, nil
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAI.APIKey))
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		a.closers = append(a.closers, client)
		return llm.NewGeminiAIProvider(client, cfg.GeminiAI.Model), nil
	default:
		a.Logger.Info("keyword extraction disabled")
		return nil, nil
	}
}

// Router builds the gin engine with middleware and every route.
func (a *App) Router() *gin.Engine {
	router := gin.New()
	router.Use(
		RequestIDMiddleware(),
		RecoveryMiddleware(a.Logger),
		LoggingMiddleware(a.Logger),
		a.Metrics.MetricsMiddleware(),
	)

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.Config.CORS.AllowOrigins,
		AllowMethods:     a.Config.CORS.AllowMethods,
		AllowHeaders:     a.Config.CORS.AllowHeaders,
		ExposeHeaders:    a.Config.CORS.ExposeHeaders,
		AllowCredentials: a.Config.CORS.AllowCredentials,
	}))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Scene media search backend is running.")
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", a.Metrics.Handler())

	search.NewControllerImpl(a.Search).RegisterRoutes(router)
	media.NewControllerImpl(a.Media).RegisterRoutes(router)

	return router
}

// Close releases the clients opened by NewApp.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
