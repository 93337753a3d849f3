package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campusadmin/api/internal/app/controllers"
	appMigrations "github.com/campusadmin/api/internal/app/migrations"
	appRepos "github.com/campusadmin/api/internal/app/repositories"
	appRoutes "github.com/campusadmin/api/internal/app/routes"
	appServices "github.com/campusadmin/api/internal/app/services"
	"github.com/campusadmin/api/internal/config"
	"github.com/campusadmin/api/internal/db"
	appMiddleware "github.com/campusadmin/api/internal/middleware"
	pkgAuth "github.com/campusadmin/api/internal/pkg/auth"
	"github.com/campusadmin/api/internal/pkg/helpers"
	"github.com/campusadmin/api/internal/pkg/logger"
	"github.com/campusadmin/api/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos      *appRepos.Repositories
	JWTService *pkgAuth.JWTService
	Logger     zerolog.Logger

	AuthService       *appServices.AuthService
	PrincipalService  *appServices.PrincipalService
	DepartmentService *appServices.DepartmentService
	TeacherService    *appServices.TeacherService
	StudentService    *appServices.StudentService
	CourseService     *appServices.CourseService
	EnrollmentService *appServices.EnrollmentService
	GradeService      *appServices.GradeService
	AttendanceService *appServices.AttendanceService
	AnalyticsService  *appServices.AnalyticsService

	AuthController       *appControllers.AuthController
	DepartmentController *appControllers.DepartmentController
	TeacherController    *appControllers.TeacherController
	StudentController    *appControllers.StudentController
	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	GradeController      *appControllers.GradeController
	AttendanceController *appControllers.AttendanceController
	AnalyticsController  *appControllers.AnalyticsController

	AuthMiddleware *appMiddleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default records.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.PrincipalService = appServices.NewPrincipalService(
		deps.Repos.TeacherRepository,
		deps.Repos.StudentRepository,
	)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository)
	deps.TeacherService = appServices.NewTeacherService(
		database,
		deps.Repos.TeacherRepository,
		deps.Repos.UserRepository,
		deps.Repos.DepartmentRepository,
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.TeacherRepository,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		database,
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.StudentRepository,
	)
	deps.GradeService = appServices.NewGradeService(
		deps.Repos.GradeRepository,
		deps.Repos.EnrollmentRepository,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.AttendanceRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.TeacherRepository,
	)
	deps.AnalyticsService = appServices.NewAnalyticsService(
		deps.Repos.AnalyticsRepository,
		deps.Repos.StudentRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Initialize controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService, deps.PrincipalService)
	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService, deps.PrincipalService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.PrincipalService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.PrincipalService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, deps.PrincipalService)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService, deps.EnrollmentService, deps.PrincipalService)
	deps.AttendanceController = appControllers.NewAttendanceController(
		deps.AttendanceService,
		deps.EnrollmentService,
		deps.CourseService,
		deps.PrincipalService,
	)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.AnalyticsService)

	return deps, nil
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

	router := gin.Default()

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DepartmentController,
		deps.TeacherController,
		deps.StudentController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.GradeController,
		deps.AttendanceController,
		deps.AnalyticsController,
		deps.AuthMiddleware,
	)

	return router
}
