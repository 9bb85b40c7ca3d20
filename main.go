package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"parcel-tracking/config"
	"parcel-tracking/database"
	"parcel-tracking/logger"
	"parcel-tracking/middleware"
	"parcel-tracking/routes"
	"parcel-tracking/services/events"
	"parcel-tracking/services/metrics"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on system env vars")
	}
	cfg := config.Load()

	if err := logger.Setup(cfg.LogDir, cfg.LogLevel); err != nil {
		fmt.Println("Logging to stdout only:", err)
	}
	defer logger.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	publisher := events.NewDispatcher(newPublisher(cfg), events.DefaultQueueSize, events.DefaultPublishTimeout)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publishers", err)
		}
	}()

	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       4 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	auth := middleware.NewAuth(db, middleware.NewVerifier(cfg.JWTSecret, cfg.PublicKeyURL))
	routes.SetupRoutes(app, db, auth, publisher, asyncLogger)

	errCh := make(chan error, 1)
	go func() {
		logger.Success("Server is running on " + cfg.ListenAddr())
		errCh <- app.Listen(cfg.ListenAddr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down gracefully...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", err)
		}
	case err := <-errCh:
		if err != nil {
			logger.Error("Server stopped", err)
		}
	}
	asyncLogger.Close()
}

// newPublisher fans events out to every configured broker. With neither
// Redis nor Kafka configured events are dropped.
func newPublisher(cfg config.AppConfig) events.Publisher {
	var publishers events.Multi

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warning("Redis unreachable at " + cfg.RedisAddr + ", notifications will retry per publish: " + err.Error())
		}
		cancel()
		publishers = append(publishers, events.NewRedisPublisher(rdb, cfg.RedisChannel))
	}

	if len(cfg.KafkaBrokers) > 0 {
		writer := events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger.Printf)
		publishers = append(publishers, events.NewKafkaPublisher(writer))
	}

	if len(publishers) == 0 {
		logger.Info("No event brokers configured")
		return events.Noop()
	}
	return publishers
}
