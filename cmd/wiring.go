package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/admin"
	adminPostgres "github.com/Dhrumivyas20/placement-portal/internal/admin/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/application"
	applicationPostgres "github.com/Dhrumivyas20/placement-portal/internal/application/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/auth"
	authPostgres "github.com/Dhrumivyas20/placement-portal/internal/auth/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/company"
	companyPostgres "github.com/Dhrumivyas20/placement-portal/internal/company/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/core/events"
	"github.com/Dhrumivyas20/placement-portal/internal/directory"
	directoryPostgres "github.com/Dhrumivyas20/placement-portal/internal/directory/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/drive"
	drivePostgres "github.com/Dhrumivyas20/placement-portal/internal/drive/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/metrics"
	"github.com/Dhrumivyas20/placement-portal/internal/statistics"
	statisticsPostgres "github.com/Dhrumivyas20/placement-portal/internal/statistics/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/student"
	studentPostgres "github.com/Dhrumivyas20/placement-portal/internal/student/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/transport"
	"github.com/Dhrumivyas20/placement-portal/internal/transport/rest"
	"github.com/Dhrumivyas20/placement-portal/pkg/logger"
	"github.com/Dhrumivyas20/placement-portal/pkg/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Dependencies struct {
	Config   *internal.Config
	SQLX     *sqlx.DB
	Gorm     *gorm.DB
	Redis    *redis.Client
	Logger   *slog.Logger
	Bus      *events.EventBus
	Metrics  *metrics.Metrics
	Resumes  *storage.LocalStorage
	Sessions *authPostgres.SessionRepository
	Services Services
}

type Services struct {
	Auth        *auth.Service
	Admin       *admin.Service
	Student     *student.Service
	Company     *company.Service
	Drive       *drive.Service
	Application *application.Service
	Statistics  *statistics.Service
	Directory   *directory.Service
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.Configure(os.Stdout, config.Observability.Logging.Level, config.Observability.Logging.Format)

	sqlxDB, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	resumes, err := storage.NewLocalStorage(config.Storage.ResumeDir)
	if err != nil {
		_ = sqlxDB.Close()
		return nil, fmt.Errorf("failed to initialize resume storage: %w", err)
	}

	deps := &Dependencies{
		Config:   config,
		SQLX:     sqlxDB,
		Gorm:     gormDB,
		Logger:   lg,
		Bus:      events.NewEventBus(lg),
		Resumes:  resumes,
		Sessions: authPostgres.NewSessionRepository(gormDB),
	}
	if config.Observability.Metrics.Enabled {
		deps.Metrics = metrics.New()
	}

	deps.Bus.SubscribeAll(events.WorkflowEventTypes, events.NewAuditHandler(lg))
	deps.Bus.SubscribeAll(events.WorkflowEventTypes, deps.Metrics.TransitionHandler())

	var revoked auth.RevocationStore = deps.Sessions
	if config.Redis.Enabled {
		deps.Redis, err = initRedis(config.Redis)
		if err != nil {
			_ = sqlxDB.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		revoked = auth.NewRedisRevocationStore(deps.Redis)
	}

	deps.Services = buildServices(deps, revoked)
	return deps, nil
}

func buildServices(deps *Dependencies, revoked auth.RevocationStore) Services {
	lg := deps.Logger
	hasher := auth.NewBcryptHasher(deps.Config.Security.BCryptCost)

	drives := drive.NewService(drivePostgres.NewDriveRepository(deps.Gorm), deps.Bus, lg)
	stats := statistics.NewService(statisticsPostgres.NewStatisticsRepository(deps.SQLX), drives, lg)
	dir := directory.NewService(directoryPostgres.NewDirectoryRepository(deps.Gorm), lg)
	tokens := auth.NewJWTTokenGenerator(deps.Config.Security.JWTSecret, deps.Config.Security.SessionTokenDuration)

	return Services{
		Auth:        auth.NewService(authPostgres.NewAccountRepository(deps.Gorm), tokens, revoked, lg),
		Admin:       admin.NewService(adminPostgres.NewAdminRepository(deps.Gorm), hasher, stats, dir, lg),
		Student:     student.NewService(studentPostgres.NewStudentRepository(deps.Gorm), hasher, deps.Bus, lg),
		Company:     company.NewService(companyPostgres.NewCompanyRepository(deps.Gorm), hasher, deps.Bus, lg),
		Drive:       drives,
		Application: application.NewService(applicationPostgres.NewApplicationRepository(deps.Gorm), deps.Bus, lg),
		Statistics:  stats,
		Directory:   dir,
	}
}

func (d *Dependencies) Handlers() rest.Handlers {
	base := transport.NewBaseHandler(d.Logger)
	return rest.Handlers{
		Auth:        auth.NewHandler(base, d.Services.Auth),
		Admin:       admin.NewHandler(base, d.Services.Admin),
		Student:     student.NewHandler(base, d.Services.Student),
		Company:     company.NewHandler(base, d.Services.Company),
		Drive:       drive.NewHandler(base, d.Services.Drive),
		Application: application.NewHandler(base, d.Services.Application, d.Resumes),
		Statistics:  statistics.NewHandler(base, d.Services.Statistics),
	}
}

func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("redis close error", "error", err)
		}
	}
	if err := d.SQLX.Close(); err != nil {
		d.Logger.Error("database close error", "error", err)
	}
}

// initDB opens one pgx pool and shares it between sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: dbConn.DB}), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return dbConn, gormDB, nil
}

func initRedis(cfg internal.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
