package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/coursehub/internal/app/controllers"
	appRepos "github.com/yigit/coursehub/internal/app/repositories"
	appRoutes "github.com/yigit/coursehub/internal/app/routes"
	appServices "github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/config"
	appMiddleware "github.com/yigit/coursehub/internal/middleware"
	"github.com/yigit/coursehub/internal/pkg/logger"
	"github.com/yigit/coursehub/internal/pkg/metrics"
	"github.com/yigit/coursehub/internal/pkg/validation"
	"github.com/yigit/coursehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService    appServices.CourseService
	CourseController *appControllers.CourseController
	PostController   *appControllers.PostController
	HomeController   *appControllers.HomeController
	CourseValidator  *validation.CourseValidator
	Repos            *appRepos.Repositories
	Metrics          *metrics.Manager // nil when metrics are disabled
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(config.PathFromEnv())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger applies the logging section of cfg to the global logger.
func SetupLogger(cfg *config.Config) zerolog.Logger {
	return logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories()
	courseRepo := deps.Repos.CourseRepository

	if cfg.Store.Seed {
		if err := seed.CreateDefaultData(context.Background(), courseRepo, lgr); err != nil {
			return nil, fmt.Errorf("failed to seed courses: %w", err)
		}
	}

	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.NewManager(
			metrics.WithProcessMetrics(),
			metrics.WithHistogramBuckets(cfg.Metrics.Buckets),
			metrics.WithCourseCount(func() float64 {
				n, _ := courseRepo.Count(context.Background())
				return float64(n)
			}),
		)
	}

	deps.CourseValidator = validation.NewCourseValidator()
	deps.CourseService = appServices.NewCourseService(courseRepo, lgr)

	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.PostController = appControllers.NewPostController()
	deps.HomeController = appControllers.NewHomeController()

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	// Trailing slashes are trimmed before routing by middleware.TrimTrailingSlash.
	router.RedirectTrailingSlash = false
	router.Use(
		appMiddleware.Recovery(lgr),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
	)

	if deps.Metrics != nil {
		router.Use(appMiddleware.Metrics(deps.Metrics))
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
		lgr.Info().Str("path", cfg.Metrics.Path).Msg("Metrics endpoint enabled")
	}

	if cfg.Swagger.Enabled {
		appRoutes.SetupSwagger(router)
	}

	appRoutes.SetupRouter(router,
		deps.HomeController,
		deps.CourseController,
		deps.PostController,
		appMiddleware.ValidateCourse(deps.CourseValidator, deps.Metrics),
	)

	return router
}

// NewCORS builds the CORS handler wrapping the router.
func NewCORS(cfg *config.Config) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", appMiddleware.RequestIDHeader},
		ExposedHeaders: []string{appMiddleware.RequestIDHeader},
	})
}
