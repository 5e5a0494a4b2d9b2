package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/arraypress/contentquery/internal/adapter/crypto"
	"github.com/arraypress/contentquery/internal/adapter/postgres/contentrepository"
	"github.com/arraypress/contentquery/internal/adapter/postgres/eventrepository"
	"github.com/arraypress/contentquery/internal/adapter/postgres/optionrepository"
	"github.com/arraypress/contentquery/internal/adapter/postgres/userrepository"
	"github.com/arraypress/contentquery/internal/adapter/redis/transientstore"
	"github.com/arraypress/contentquery/internal/config"
	"github.com/arraypress/contentquery/internal/core/services/anonymize"
	"github.com/arraypress/contentquery/internal/core/services/assets"
	auth2 "github.com/arraypress/contentquery/internal/core/services/auth"
	"github.com/arraypress/contentquery/internal/core/services/option"
	"github.com/arraypress/contentquery/internal/core/services/query"
	"github.com/arraypress/contentquery/internal/core/services/role"
	"github.com/arraypress/contentquery/internal/cronengine"
	"github.com/arraypress/contentquery/internal/domain"
	logger2 "github.com/arraypress/contentquery/internal/global/logger"
	http2 "github.com/arraypress/contentquery/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting content query service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	contentPort := contentrepository.New(db, logger)
	optionPort := optionrepository.New(db, logger)
	userPort := userrepository.New(db, logger)
	eventPort := eventrepository.New(db, logger)
	transientPort := transientstore.NewTransientStore(redisClient, logger)

	// primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	// services
	querySvc := query.NewQueryService(contentPort, transientPort, sysCfg.TransientCfg, logger)
	optionSvc := option.NewOptionService(optionPort, transientPort, sysCfg.TransientCfg, logger)
	assetSvc := assets.NewAssetService()
	anonymizeSvc := anonymize.NewAnonymizeService()
	roleSvc := role.NewRoleService(userPort, userPort, logger)
	localAuth := auth2.NewLocalAuthService(userPort, userPort, jwtProvider)
	serviceProvider := http2.NewServiceProvider(querySvc, optionSvc, assetSvc, anonymizeSvc, roleSvc, localAuth)

	// server
	httpServer := http2.NewServer(
		sysCfg.ServerConfig.Port,
		sysCfg.ServerConfig.ServiceName,
		*serviceProvider,
		sysCfg.JwtConfig,
		logger,
	)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}

	ctxBg, cancelBg := context.WithCancel(context.Background())
	httpServer.Start(ctxBg)

	cronSvc := cronengine.NewCronEngine(sysCfg.CronCfg, eventPort, logger)
	cronSvc.RegisterCallback("query_cache_flush", func(ctx context.Context, _ *domain.ScheduledEvent) error {
		return querySvc.InvalidateCache(ctx)
	})
	if err := cronSvc.ScheduleRecurring(ctxBg, "query_cache_flush", nil, time.Now().Add(time.Hour), time.Hour); err != nil {
		logger.Error("Failed to schedule cache flush", "error", err)
	}
	if !sysCfg.DebugMode {
		cronSvc.StartCronEngine(ctxBg)
	}

	<-quit
	logger.Info("Shutting down server...")

	cancelBg()
	httpServer.Stop()

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
