package client

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gatherly/pkg/logger"
)

type Client struct {
	Mongo *mongo.Client

	mongoOnce sync.Once
}

func New() *Client {
	return &Client{}
}

// SetMongo connects to MongoDB exactly once per process. Repeated calls
// reuse the existing connection, so every service entry point can call it
// without coordinating.
func (c *Client) SetMongo(log *logger.Logger, mongoURI string, connTimeout time.Duration) {
	c.mongoOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
		defer cancel()

		mc, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}

		if err := mc.Ping(ctx, nil); err != nil {
			log.Fatal("Failed to ping MongoDB", "error", err)
		}

		log.Info("Successfully connected to MongoDB")
		c.Mongo = mc
	})
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	if c.Mongo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Mongo.Disconnect(ctx); err != nil {
		log.Error("Failed to disconnect MongoDB client", "error", err)
		return
	}
	log.Info("MongoDB client disconnected")
}
