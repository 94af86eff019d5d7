package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"neuroload/cmd"
	httpin "neuroload/internal/adapters/in/http"
	"neuroload/internal/adapters/out/gemini"
	"neuroload/internal/adapters/out/postgres/escrowrepo"
	"neuroload/internal/adapters/out/postgres/orderrepo"
	"neuroload/internal/adapters/out/postgres/planrepo"
	"neuroload/internal/adapters/out/postgres/vehiclerepo"
	"neuroload/internal/adapters/out/razorpay"
	"neuroload/internal/adapters/out/redisstate"
	"neuroload/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	escrowProvider, err := razorpay.NewProvider(configs.RazorpayKeyID, configs.RazorpayKeySecret)
	if err != nil {
		log.Fatalf("Failed to create escrow provider: %v", err)
	}

	plannerClient, err := gemini.NewPlannerClient(context.Background(), configs.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to create planner client: %v", err)
	}

	stateStore, err := redisstate.NewStore(configs.RedisAddr, configs.RedisPassword, 0)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer func() { _ = stateStore.Close() }()

	app := cmd.NewCompositionRoot(
		configs, gormDB,
		escrowProvider, plannerClient, stateStore,
		logger,
	)

	jobManager := jobs.NewJobManager(app.CreateReconcilePayoutsCommandHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:         goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:     goDotEnvVariable("REDIS_PASSWORD"),
		RazorpayKeyID:     goDotEnvVariable("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: goDotEnvVariable("RAZORPAY_KEY_SECRET"),
		GeminiAPIKey:      goDotEnvVariable("GEMINI_API_KEY"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&vehiclerepo.VehicleDTO{},
		&escrowrepo.HoldDTO{},
		&planrepo.PlanDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpin.NewServer(
		app.CreatePostOrderCommandHandler(),
		app.CreateAcceptOrderCommandHandler(),
		app.CreateGeneratePlanCommandHandler(),
		app.CreateDispatchOrderCommandHandler(),
		app.CreateCompleteDeliveryCommandHandler(),
		app.CreateRegisterVehicleCommandHandler(),
		app.CreateCompleteVerificationCommandHandler(),
		app.CreateGetMarketplaceOrdersQueryHandler(),
		app.CreateGetPlanQueryHandler(),
		app.CreateGetPaymentStatusQueryHandler(),
		app.StateStore(),
		app.Logger(),
	)

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
