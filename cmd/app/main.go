package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	httpin "github.com/swasthya-health/appointment-slots-service/internal/adapters/in/http"
	"github.com/swasthya-health/appointment-slots-service/internal/adapters/in/rabbitmq"
	"github.com/swasthya-health/appointment-slots-service/internal/adapters/out/cache"
	"github.com/swasthya-health/appointment-slots-service/internal/adapters/out/logger"
	"github.com/swasthya-health/appointment-slots-service/internal/adapters/out/postgres"
	"github.com/swasthya-health/appointment-slots-service/internal/config"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
	"github.com/swasthya-health/appointment-slots-service/internal/core/services/booking"
	"github.com/swasthya-health/appointment-slots-service/internal/core/services/pharmacy"
	"github.com/swasthya-health/appointment-slots-service/internal/core/services/scheduleadmin"
	"github.com/swasthya-health/appointment-slots-service/internal/core/services/slotresolver"
	"github.com/swasthya-health/appointment-slots-service/internal/jobs"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	postgresAdapter, err := postgres.NewPostgresAdapter(cfg, log.WithModule("PostgresAdapter"))
	if err != nil {
		log.Error("app.postgres.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, log.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		if adapter != nil {
			cacheAdapter = adapter
		}
	}

	slotResolverService := slotresolver.NewService(postgresAdapter, cacheAdapter, log)
	bookingService := booking.NewService(postgresAdapter, slotResolverService, log)
	scheduleAdminService := scheduleadmin.NewService(postgresAdapter, slotResolverService, log)
	pharmacyService := pharmacy.NewService(postgresAdapter, log)

	router := gin.Default()
	controller := httpin.NewController(
		slotResolverService,
		bookingService,
		scheduleAdminService,
		pharmacyService,
		cfg,
		log,
	)
	controller.RegisterRoutes(router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewCacheHitListener(
			slotResolverService,
			cfg,
			log.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sweeper := jobs.NewCacheSweeper(cfg, cacheAdapter, log)
	if err := sweeper.Start(ctx); err != nil {
		log.Error("app.cache_sweep.start_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer sweeper.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
