package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/notifier"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/issuerepo"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/adapters/out/postgres/walletrepo"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build composition root")
	}

	if configs.NotifyDispatchOn {
		jobManager, jobErr := app.CreateJobManager()
		if jobErr != nil {
			logger.Fatal().Err(jobErr).Msg("failed to build job manager")
		}
		if jobErr = jobManager.StartAll(); jobErr != nil {
			logger.Fatal().Err(jobErr).Msg("failed to start jobs")
		}
		defer jobManager.StopAll()
	}

	if err = runWebServer(&app, configs.HTTPPort, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		LogLevel:         goDotEnvVariable("LOG_LEVEL"),
		NotifyBatchSize:  intEnvVariable("NOTIFY_BATCH_SIZE", 100),
		NotifyDispatchOn: goDotEnvVariable("NOTIFY_DISPATCH_ON") != "false",
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnvVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %s", key, raw)
	}
	return value
}

func newLogger(level string) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(logLevel).With().Timestamp().Logger()
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&trackingrepo.EventDTO{},
		&issuerepo.IssueDTO{},
		&walletrepo.AccountDTO{},
		&walletrepo.LedgerEntryDTO{},
		&notifier.OutboxMessageDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func runWebServer(app *cmd.CompositionRoot, port string, logger zerolog.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(httpadapter.RequestLogger(logger))

	app.CreateHTTPServer().RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info().Str("port", port).Msg("http server starting")
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
