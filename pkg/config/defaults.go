package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "gatherly"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 20
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024  // 1MB for JSON bodies
	DefaultMaxUploadSize  = 10 * 1024 * 1024 // 10MB for multipart event creation

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultAssetHostURL       = "http://localhost:9000"
	DefaultAssetUploadFolder  = "gatherly/events"
	DefaultAssetUploadTimeout = 30 * time.Second

	DefaultKafkaEventTopic   = "gatherly.event.created"
	DefaultKafkaBookingTopic = "gatherly.booking.created"

	DefaultPaginationLimit = 100
)
