package di

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"imobcrm/internal/adapters/messaging"
	"imobcrm/internal/adapters/persistence"
	"imobcrm/internal/adapters/platforms"
	"imobcrm/internal/adapters/storage"
	"imobcrm/internal/adapters/validation"
	"imobcrm/internal/config"
	"imobcrm/internal/ports"
	"imobcrm/internal/services"
	db "imobcrm/internal/shared/database"
	logger "imobcrm/internal/shared/log"
)

type Container struct {
	Config *config.Config
	DB     *gorm.DB

	SchemaValidator ports.SchemaValidator

	AuthService       *services.AuthService
	LeadService       *services.LeadService
	PropertyService   *services.PropertyService
	DashboardService  *services.DashboardService
	PublishingService *services.PublishingService
}

func (c *Container) Shutdown(ctx context.Context) error {
	logger.Info(ctx, "Shutting down container resources...")

	if c.DB != nil {
		if err := db.Close(); err != nil {
			logger.Error(ctx, err, "Failed to close database connection")
		}
	}

	logger.Info(ctx, "Container shutdown complete")
	return nil
}

func InitContainer() (*Container, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)

	database, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logger.Info(ctx, "Running database migrations...")
	if err := MigrateDB(database); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info(ctx, "Database migrations completed successfully")

	kafkaPublisher, err := messaging.NewKafkaPublisher(messaging.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kafka publisher: %w", err)
	}

	photoStorage, err := storage.NewMinIOStorage(storage.MinIOConfig{
		Endpoint:  cfg.MinIOEndpoint,
		AccessKey: cfg.MinIOAccessKey,
		SecretKey: cfg.MinIOSecretKey,
		UseSSL:    cfg.MinIOUseSSL,
		Bucket:    cfg.MinIOBucket,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO storage: %w", err)
	}

	schemaValidator, err := validation.NewJSONSchemaValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize schema validator: %w", err)
	}

	profileStore := persistence.NewGormProfileStore(database)
	leadStore := persistence.NewGormLeadStore(database)
	propertyStore := persistence.NewGormPropertyStore(database)
	auditStore := persistence.NewGormPublishingAuditStore(database)

	authService := services.NewAuthService(profileStore, cfg.JWTSecret, cfg.JWTExpiry)
	leadService := services.NewLeadService(leadStore)
	propertyService := services.NewPropertyService(propertyStore, photoStorage)
	dashboardService := services.NewDashboardService(leadService, propertyService)

	latency := platforms.Config{
		LatencyMin: cfg.PlatformLatencyMin,
		LatencyMax: cfg.PlatformLatencyMax,
	}
	olxConfig, zapConfig, vivaRealConfig := latency, latency, latency
	olxConfig.SuccessRate = cfg.OLXSuccessRate
	zapConfig.SuccessRate = cfg.ZapSuccessRate
	vivaRealConfig.SuccessRate = cfg.VivaRealSuccessRate

	publishingService := services.NewPublishingService(
		auditStore,
		kafkaPublisher,
		cfg.KafkaPublishingTopic,
		platforms.NewOLX(olxConfig),
		platforms.NewZapImoveis(zapConfig),
		platforms.NewVivaReal(vivaRealConfig),
	)

	return &Container{
		Config:            cfg,
		DB:                database,
		SchemaValidator:   schemaValidator,
		AuthService:       authService,
		LeadService:       leadService,
		PropertyService:   propertyService,
		DashboardService:  dashboardService,
		PublishingService: publishingService,
	}, nil
}
