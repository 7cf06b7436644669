package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yit/registration/internal/app/controllers"
	appRepos "github.com/yit/registration/internal/app/repositories"
	appRoutes "github.com/yit/registration/internal/app/routes"
	appServices "github.com/yit/registration/internal/app/services"
	"github.com/yit/registration/internal/config"
	"github.com/yit/registration/internal/db"
	appMiddleware "github.com/yit/registration/internal/middleware"
	pkgAuth "github.com/yit/registration/internal/pkg/auth"
	"github.com/yit/registration/internal/pkg/logger"
	"github.com/yit/registration/internal/seed"
	"github.com/yit/registration/internal/store"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	CourseService          *appServices.CourseService
	StudentService         *appServices.StudentService
	FacultyService         *appServices.FacultyService
	RegistrationService    *appServices.RegistrationService
	AuthController         *appControllers.AuthController
	CourseController       *appControllers.CourseController
	StudentController      *appControllers.StudentController
	FacultyController      *appControllers.FacultyController
	RegistrationController *appControllers.RegistrationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A .env file is optional, real environments set variables directly
	_ = godotenv.Load()

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the record store selected by the configuration.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (store.Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		lgr.Info().Msg("Using in-memory store")
		return store.NewMemoryStore(), nil

	case "file":
		lgr.Info().Str("dataDir", cfg.Store.DataDir).Msg("Using file store")
		return store.NewFileStore(cfg.Store.DataDir)

	case "postgres":
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}

		st := store.NewPostgresStore(database.Pool)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := st.EnsureCollections(ctx,
			store.CollectionStudents,
			store.CollectionFaculty,
			store.CollectionCourses,
			store.CollectionRegistrations,
		); err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Failed to prepare collection tables")
			return nil, err
		}

		lgr.Info().Msg("Database connection successfully established.")
		return st, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, st store.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(st)

	tokenExp, err := time.ParseDuration(cfg.JWT.TokenExpiration)
	if err != nil {
		tokenExp = 24 * time.Hour
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    tokenExp,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.StudentRepository,
		deps.Repos.FacultyRepository,
		deps.JWTService,
		lgr,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.FacultyRepository,
		deps.Repos.RegistrationRepository,
	)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.FacultyService = appServices.NewFacultyService(deps.Repos.FacultyRepository, deps.Repos.CourseRepository)
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.RegistrationRepository,
		deps.Repos.CourseRepository,
		deps.Repos.StudentRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.RegistrationService)
	deps.FacultyController = appControllers.NewFacultyController(deps.FacultyService)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.RegistrationService)

	return deps, nil
}

// SeedIfRequested populates sample data when the config asks for it.
func SeedIfRequested(cfg *config.Config, st store.Store, deps *Dependencies, lgr zerolog.Logger) {
	if !cfg.Seed {
		return
	}
	if err := seed.Run(context.Background(), st, deps.Repos, lgr); err != nil {
		// Startup continues; the API works against an empty store
		lgr.Error().Err(err).Msg("Failed to seed sample data")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.StudentController,
		deps.FacultyController,
		deps.RegistrationController,
		deps.AuthMiddleware,
	)

	return router
}
