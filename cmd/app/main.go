package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bistro/cmd"
	bistrohttp "bistro/internal/adapters/in/http"
	"bistro/internal/adapters/out/postgres/driverrepo"
	"bistro/internal/adapters/out/postgres/menurepo"
	"bistro/internal/adapters/out/postgres/orderrepo"
	"bistro/internal/jobs"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfigs(logger)

	db, err := openDatabase(config)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	root, err := cmd.NewCompositionRoot(config, db, logger)
	if err != nil {
		logger.Error("composition root failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.SeedReminderScheduler(ctx); err != nil {
		logger.Error("reminder scheduler seed failed", "error", err)
		os.Exit(1)
	}

	jobManager := jobs.NewJobManager(root.CreateRemindStaffCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("job startup failed", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := buildEcho(root, logger)

	go func() {
		if err := e.Start("0.0.0.0:" + config.HTTPPort); err != nil {
			logger.Info("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func buildEcho(root *cmd.CompositionRoot, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.OFF)
	e.Use(middleware.Recover())

	server := bistrohttp.NewServer(
		root.CreatePlaceOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateConfirmOrderCommandHandler(),
		root.CreateAssignDriverCommandHandler(),
		root.CreateRecordDriverFixCommandHandler(),
		root.CreateDismissReminderCommandHandler(),
		root.CreateGetOrdersByStatusQueryHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetDriverLocationQueryHandler(),
		root.Hub(),
		logger,
	)
	server.RegisterRoutes(e)
	return e
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode,
	)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&menurepo.MenuItemDTO{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, using environment")
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		OriginLatitude:  envFloat("RESTAURANT_ORIGIN_LAT"),
		OriginLongitude: envFloat("RESTAURANT_ORIGIN_LON"),

		PromoFreeDeliveryUntil: os.Getenv("PROMO_FREE_DELIVERY_UNTIL"),

		ReminderMaxAlerts:       envInt("REMINDER_MAX_ALERTS"),
		ReminderIntervalSeconds: envInt("REMINDER_INTERVAL_SECONDS"),
		ReminderCooldownSeconds: envInt("REMINDER_COOLDOWN_SECONDS"),

		GeocoderBaseURL: os.Getenv("GEOCODER_BASE_URL"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envInt("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return value
}

func envFloat(key string) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return value
}
