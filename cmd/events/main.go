package main

import (
	"gatherly/internal/events/handler"
	"gatherly/internal/events/repository"
	"gatherly/internal/events/service"
	"gatherly/internal/events/validator"
	"gatherly/pkg/app"
	"gatherly/pkg/assets"
	"gatherly/pkg/config"
	"gatherly/pkg/health"
	"gatherly/pkg/kafka"
)

const ServiceName = "events"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Events service")
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown(cfg.Log)

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	eventService := initServices(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewEventHandler(eventService, cfg.Log, int64(cfg.MaxUploadSize)),
		health.NewHandler(cfg.Client.Mongo, cfg.Log),
		"application/json", "multipart/form-data",
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.EventService {
	eventValidator := validator.NewEventValidator(cfg.Log)
	eventRepo := repository.NewMongoEventRepository(cfg)
	uploader := assets.NewHostClient(cfg.AssetHostURL, cfg.AssetUploadTimeout)

	var publisher service.Publisher
	if producer != nil {
		publisher = producer
	}

	eventService := service.NewEventService(
		eventRepo,
		uploader,
		eventValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Event service initialized",
		"database", cfg.MongoDatabaseName,
		"asset_host", cfg.AssetHostURL,
	)
	return eventService
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka notifications disabled; no brokers configured")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaEventTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka.LoggingMiddleware(cfg.Log))

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaEventTopic)
	return producer
}
