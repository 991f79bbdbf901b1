package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appControllers "github.com/ekurt/campusreg/internal/app/controllers"
	appMigrations "github.com/ekurt/campusreg/internal/app/migrations"
	appRepos "github.com/ekurt/campusreg/internal/app/repositories"
	appRoutes "github.com/ekurt/campusreg/internal/app/routes"
	appServices "github.com/ekurt/campusreg/internal/app/services"
	"github.com/ekurt/campusreg/internal/config"
	"github.com/ekurt/campusreg/internal/db"
	appMiddleware "github.com/ekurt/campusreg/internal/middleware"
	pkgAuth "github.com/ekurt/campusreg/internal/pkg/auth"
	"github.com/ekurt/campusreg/internal/pkg/cache"
	"github.com/ekurt/campusreg/internal/pkg/filestorage"
	"github.com/ekurt/campusreg/internal/pkg/logger"
	"github.com/ekurt/campusreg/internal/seed"
)

// programCodeCacheTTL bounds staleness of the program-code lookup used by
// student validation; mutations invalidate it sooner.
const programCodeCacheTTL = 5 * time.Minute

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	SessionService    *pkgAuth.SessionService
	FileStorage       *filestorage.LocalStorage
	AuthService       *appServices.AuthService
	CollegeService    *appServices.CollegeService
	ProgramService    *appServices.ProgramService
	StudentService    *appServices.StudentService
	DashboardService  *appServices.DashboardService
	AuthController    *appControllers.AuthController
	CollegeController *appControllers.CollegeController
	ProgramController *appControllers.ProgramController
	StudentController *appControllers.StudentController
	AuthMiddleware    *appMiddleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().Str("level", cfg.Logging.Level).Str("format", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	logger.Info().Msg("Establishing database connection")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}

	logger.Info().Msg("Running database migrations")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.Run(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), appRepos.NewRepositories(database)); err != nil {
		// Startup continues; seeding failures are not fatal
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(database)

	baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL, cfg.Upload.MaxSizeBytes, cfg.Upload.AllowedTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage

	deps.SessionService = pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey:  cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		MaxAge:     cfg.SessionMaxAge(),
		Secure:     cfg.Session.Secure,
	})

	dashboardCache := cache.NewTTLCache(cfg.DashboardCacheTTL())
	programCodeCache := cache.NewTTLCache(programCodeCacheTTL)

	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.CollegeRepository,
		deps.Repos.ProgramRepository,
		deps.Repos.StudentRepository,
		dashboardCache,
	)
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository)
	deps.CollegeService = appServices.NewCollegeService(
		deps.Repos.CollegeRepository,
		deps.Repos.ProgramRepository,
		deps.DashboardService,
	)
	deps.ProgramService = appServices.NewProgramService(
		deps.Repos.ProgramRepository,
		deps.Repos.CollegeRepository,
		programCodeCache,
		deps.DashboardService,
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.ProgramService,
		deps.FileStorage,
		deps.DashboardService,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.SessionService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.DashboardService, deps.SessionService)
	deps.CollegeController = appControllers.NewCollegeController(deps.CollegeService)
	deps.ProgramController = appControllers.NewProgramController(deps.ProgramService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CollegeController,
		deps.ProgramController,
		deps.StudentController,
		deps.AuthMiddleware,
		deps.FileStorage.BasePath(),
	)

	return router
}
