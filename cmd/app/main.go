package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"shipments/cmd"
	httpserver "shipments/internal/adapters/in/http"
	"shipments/internal/adapters/out/gmailer"
	"shipments/internal/adapters/out/kafka"
	"shipments/internal/adapters/out/postgres/approvalrepo"
	"shipments/internal/adapters/out/postgres/shipmentrepo"
	"shipments/internal/adapters/out/s3"
	"shipments/internal/core/application/realtime"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustConnectDB(configs)
	mustMigrate(db)

	storage := mustCreateStorage(ctx, configs)
	publisher := kafka.NewChangePublisher(configs.KafkaHost, configs.KafkaShipmentsChanged, logger)
	defer publisher.Close()
	stream := kafka.NewChangeStream(
		[]string{configs.KafkaHost}, configs.KafkaShipmentsChanged, configs.KafkaConsumerGroup, logger)
	defer stream.Close()
	mailer := mustCreateMailer(ctx, configs, logger)

	app := cmd.NewCompositionRoot(configs, db, storage, publisher, stream, mailer, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	// Keep the local workspace converging on persisted state.
	workspace := realtime.NewWorkspace()
	reconciler := app.CreateReconciler(workspace)
	go func() {
		if err := reconciler.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Reconciler stopped", "error", err)
		}
	}()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		S3Endpoint:  goDotEnvVariable("S3_ENDPOINT"),
		S3AccessKey: goDotEnvVariable("S3_ACCESS_KEY"),
		S3SecretKey: goDotEnvVariable("S3_SECRET_KEY"),
		S3Bucket:    goDotEnvVariable("S3_BUCKET"),
		S3Region:    goDotEnvVariable("S3_REGION"),
		S3UseSSL:    goDotEnvBool("S3_USE_SSL"),

		KafkaHost:             goDotEnvVariable("KAFKA_HOST"),
		KafkaConsumerGroup:    goDotEnvVariable("KAFKA_CONSUMER_GROUP"),
		KafkaShipmentsChanged: goDotEnvVariable("KAFKA_SHIPMENTS_CHANGED_TOPIC"),

		GmailClientID:     goDotEnvVariable("GMAIL_CLIENT_ID"),
		GmailClientSecret: goDotEnvVariable("GMAIL_CLIENT_SECRET"),
		GmailRefreshToken: goDotEnvVariable("GMAIL_REFRESH_TOKEN"),
		GmailFrom:         goDotEnvVariable("GMAIL_FROM"),
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

func goDotEnvBool(key string) bool {
	value, _ := strconv.ParseBool(goDotEnvVariable(key))
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func mustMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.DestinationDTO{},
		&shipmentrepo.CargoUnitDTO{},
		&shipmentrepo.DocumentDTO{},
		&shipmentrepo.TrackingEventDTO{},
		&shipmentrepo.CorrespondenceDTO{},
		&approvalrepo.ApprovalRequestDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func mustCreateStorage(ctx context.Context, configs cmd.Config) *s3.BlobStorage {
	storage, err := s3.NewBlobStorage(s3.Config{
		Endpoint:  configs.S3Endpoint,
		AccessKey: configs.S3AccessKey,
		SecretKey: configs.S3SecretKey,
		Bucket:    configs.S3Bucket,
		Region:    configs.S3Region,
		UseSSL:    configs.S3UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to create blob storage: %v", err)
	}
	if err = storage.EnsureBucket(ctx); err != nil {
		log.Fatalf("Failed to ensure document bucket: %v", err)
	}
	return storage
}

func mustCreateMailer(ctx context.Context, configs cmd.Config, logger *slog.Logger) *gmailer.Mailer {
	oauth := gmailer.NewOAuth(configs.GmailClientID, configs.GmailClientSecret, configs.GmailRefreshToken)
	mailer, err := gmailer.NewMailer(ctx, oauth.TokenSource(ctx), configs.GmailFrom, logger)
	if err != nil {
		log.Fatalf("Failed to create mailer: %v", err)
	}
	return mailer
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpserver.NewServer(
		app.CreateCreateShipmentCommandHandler(),
		app.CreateAdvanceShipmentCommandHandler(),
		app.CreateRecordDocumentUploadCommandHandler(),
		app.CreateRemoveDocumentCommandHandler(),
		app.CreateResolveApprovalCommandHandler(),
		app.CreateSendCorrespondenceCommandHandler(),
		app.CreateGetShipmentQueryHandler(),
		app.CreateGetAllShipmentsQueryHandler(),
		app.CreateGetPendingApprovalsQueryHandler(),
		app.CreateGetDocumentURLQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
