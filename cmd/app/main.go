package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airport-service/api"
	"github.com/Domenick1991/airport-service/config"
	"github.com/Domenick1991/airport-service/internal/auth"
	"github.com/Domenick1991/airport-service/internal/bootstrap"
	"github.com/Domenick1991/airport-service/internal/cache"
	"github.com/Domenick1991/airport-service/internal/kafka"
	"github.com/Domenick1991/airport-service/internal/logger"
	"github.com/Domenick1991/airport-service/internal/media"
	"github.com/Domenick1991/airport-service/internal/repository"
	"github.com/Domenick1991/airport-service/internal/service/catalog"
	"github.com/Domenick1991/airport-service/internal/service/flights"
	"github.com/Domenick1991/airport-service/internal/service/orders"
	"github.com/Domenick1991/airport-service/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			logg.Fatal("migrate database", zap.Error(err))
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.ReferenceTTLSeconds)*time.Second)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		logg.Warn("redis is not reachable, reference lists will be read from the database", zap.Error(err))
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logg)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		logg.Warn("kafka is not reachable, order events will be dropped", zap.Error(err))
	}

	images, err := media.NewStorage(cfg.HTTP.MediaDir, cfg.HTTP.MediaURL)
	if err != nil {
		logg.Fatal("init media storage", zap.Error(err))
	}

	tokens := auth.NewTokenManager(cfg.Auth)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	flightRepo := repository.NewFlightRepository(pool)
	orderService := orders.NewOrderService(
		repository.NewOrderRepository(pool),
		flightRepo,
		logg,
		orders.WithEvents(producer, cfg.Kafka.OrdersTopic, cfg.Kafka.NotificationsTopic),
		orders.WithPublishTimeout(time.Duration(cfg.Kafka.PublishTimeoutMS)*time.Millisecond),
		orders.WithLimiter(orders.NewUserLimiter(cfg.Orders.RateLimitPerMinute, cfg.Orders.RateLimitBurst)),
		orders.WithPageSize(cfg.Orders.PageSize, cfg.Orders.MaxPageSize),
	)

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.RouterDeps{
		Log:           logg,
		Auth:          tokens,
		Airports:      catalog.NewAirportService(repository.NewAirportRepository(pool), redisCache, images, logg),
		Routes:        catalog.NewRouteService(repository.NewRouteRepository(pool)),
		AirplaneTypes: catalog.NewAirplaneTypeService(repository.NewAirplaneTypeRepository(pool), redisCache, logg),
		Airplanes:     catalog.NewAirplaneService(repository.NewAirplaneRepository(pool)),
		Crews:         catalog.NewCrewService(repository.NewCrewRepository(pool)),
		Flights:       flights.NewFlightService(flightRepo),
		Orders:        orderService,
		Users:         users.NewUserService(repository.NewUserRepository(pool), tokens, hasher),
		SwaggerDir:    cfg.HTTP.SwaggerDir,
		MediaDir:      cfg.HTTP.MediaDir,
		MediaURL:      cfg.HTTP.MediaURL,
	})

	if err := bootstrap.Run(ctx, cfg, logg, router, orderService, tokens); err != nil {
		logg.Fatal("server error", zap.Error(err))
	}
}
