package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/cmd"
	httpin "github.com/Freeway-project/Jaddpi-sub001/internal/adapters/in/http"
	"github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/postgres/couponrepo"
	"github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/postgres/driverrepo"
	"github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/postgres/ledgerrepo"
	"github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/Freeway-project/Jaddpi-sub001/internal/adapters/out/postgres/paymentrepo"
	"github.com/Freeway-project/Jaddpi-sub001/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs, err := getConfigs()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer app.Close()

	jobManager := jobs.NewJobManager(
		app.CreateExpireOrdersCommandHandler(),
		configs.ExpirySweepSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() (cmd.Config, error) {
	// Absent .env is fine in environments that inject real variables.
	_ = godotenv.Load(".env")

	config := cmd.Config{
		HTTPPort:                envOrDefault("HTTP_PORT", "8080"),
		DBHost:                  envOrDefault("DB_HOST", "localhost"),
		DBPort:                  envOrDefault("DB_PORT", "5432"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               envOrDefault("DB_SSLMODE", "disable"),
		WebhookSecret:           os.Getenv("WEBHOOK_SECRET"),
		ExpirySweepSchedule:     envOrDefault("EXPIRY_SWEEP_SCHEDULE", "@every 5m"),
		KafkaHost:               envOrDefault("KAFKA_HOST", "localhost:9092"),
		KafkaNotificationsTopic: envOrDefault("KAFKA_NOTIFICATIONS_TOPIC", "driver.notifications"),
	}

	if config.WebhookSecret == "" {
		return cmd.Config{}, fmt.Errorf("WEBHOOK_SECRET must be set")
	}

	ttlMinutes, err := strconv.Atoi(envOrDefault("ORDER_TTL_MINUTES", "30"))
	if err != nil || ttlMinutes <= 0 {
		return cmd.Config{}, fmt.Errorf("ORDER_TTL_MINUTES must be a positive integer")
	}
	config.OrderClaimTTL = time.Duration(ttlMinutes) * time.Minute

	config.ExpirySweepBatch, err = strconv.Atoi(envOrDefault("EXPIRY_SWEEP_BATCH", "0"))
	if err != nil {
		return cmd.Config{}, fmt.Errorf("EXPIRY_SWEEP_BATCH must be an integer")
	}

	config.NotifyFanoutLimit, err = strconv.Atoi(envOrDefault("NOTIFY_FANOUT_LIMIT", "8"))
	if err != nil {
		return cmd.Config{}, fmt.Errorf("NOTIFY_FANOUT_LIMIT must be an integer")
	}

	return config, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// openDatabase connects to postgres and migrates the schema.
// TranslateError is required: the repositories rely on gorm.ErrDuplicatedKey
// to classify unique violations.
func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&ledgerrepo.EventDTO{},
		&paymentrepo.PaymentDTO{},
		&couponrepo.CouponDTO{},
	); err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAcceptOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateRegisterDriverCommandHandler(),
		app.CreateProcessPaymentEventCommandHandler(),
		app.CreateExpireOrdersCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateListOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
