package main

import (
	"gatherly/internal/bookings/handler"
	"gatherly/internal/bookings/repository"
	"gatherly/internal/bookings/service"
	"gatherly/internal/bookings/validator"
	eventsrepository "gatherly/internal/events/repository"
	"gatherly/pkg/app"
	"gatherly/pkg/config"
	"gatherly/pkg/health"
	"gatherly/pkg/kafka"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Bookings service")
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown(cfg.Log)

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	bookingService := initServices(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		health.NewHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	eventRepo := eventsrepository.NewMongoEventRepository(cfg)

	var publisher service.Publisher
	if producer != nil {
		publisher = producer
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		eventRepo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka notifications disabled; no brokers configured")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka.LoggingMiddleware(cfg.Log))

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaBookingTopic)
	return producer
}
