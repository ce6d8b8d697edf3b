package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/richxcame/transitops/internal/analytics"
	"github.com/richxcame/transitops/internal/audit"
	"github.com/richxcame/transitops/internal/catalog"
	"github.com/richxcame/transitops/internal/positions"
	"github.com/richxcame/transitops/internal/pricing"
	"github.com/richxcame/transitops/internal/ticketing"
	"github.com/richxcame/transitops/internal/trips"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/richxcame/transitops/pkg/config"
	"github.com/richxcame/transitops/pkg/database"
	"github.com/richxcame/transitops/pkg/logger"
	"github.com/richxcame/transitops/pkg/middleware"
	"github.com/richxcame/transitops/pkg/redis"
	_ "github.com/richxcame/transitops/pkg/validation"
)

const serviceName = "fares"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := database.Migrate(cfg.Database.URL()); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)
	logger.Info("Connected to PostgreSQL database")

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	var publisher positions.Publisher = positions.NoopPublisher{}
	if cfg.NATS.Enabled {
		natsPub, err := positions.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer natsPub.Close()
		publisher = natsPub
		logger.Info("Connected to NATS", zap.String("url", cfg.NATS.URL))
	}

	loc, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		logger.Fatal("Invalid reporting timezone",
			zap.String("timezone", cfg.Analytics.Timezone), zap.Error(err))
	}

	txm := database.NewTxManager(pool)

	// Cached reads serve the public catalog endpoints. Operations that run
	// inside a transaction read through the plain repository so every lookup
	// sees the same snapshot.
	catalogRepo := catalog.NewRepository(pool)
	catalogTTL := time.Duration(cfg.Redis.CatalogTTL) * time.Second
	cachedCatalog := catalog.NewCachedReader(catalogRepo, redisClient, catalogTTL)
	auditSink := audit.NewPostgresSink(pool)
	catalogService := catalog.NewService(cachedCatalog, catalogRepo, txm, auditSink)
	catalogHandler := catalog.NewHandler(catalogService)

	calendar := pricing.NoHolidays{}
	issueResolver := pricing.NewResolver(catalogRepo, calendar)
	quoteResolver := pricing.NewResolver(cachedCatalog, calendar)
	quoteHandler := pricing.NewHandler(quoteResolver)
	ruleRepo := pricing.NewRepository(pool)
	ruleAdminHandler := pricing.NewAdminHandler(ruleRepo, cachedCatalog)

	ticketRepo := ticketing.NewRepository(pool)
	ticketService := ticketing.NewService(ticketRepo, issueResolver, txm)
	ticketHandler := ticketing.NewHandler(ticketService)

	tripRepo := trips.NewRepository(pool)
	tripService := trips.NewService(tripRepo, ticketRepo, catalogRepo, txm)
	tripHandler := trips.NewHandler(tripService)

	analyticsRepo := analytics.NewRepository(pool)
	analyticsService := analytics.NewService(analyticsRepo, catalogRepo, txm, loc)
	analyticsHandler := analytics.NewHandler(analyticsService)

	positionRepo := positions.NewRepository(pool)
	positionService := positions.NewService(positionRepo, catalogRepo, txm, publisher)
	positionHandler := positions.NewHandler(positionService)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Correlation-ID"}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics(serviceName))
	router.Use(middleware.SecurityHeaders())

	router.GET("/healthz", common.HealthCheck(serviceName, "1.0.0", map[string]func() error{
		"postgres": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx)
		},
		"redis": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		},
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWT.Secret))
	{
		catalogGroup := api.Group("", middleware.RequireCapability(middleware.CapCatalogRead))
		{
			catalogGroup.GET("/ticket-types", catalogHandler.ListTicketTypes)
			catalogGroup.GET("/ticket-types/:id", catalogHandler.GetTicketType)
			catalogGroup.GET("/pricing/rules", catalogHandler.ListPricingRules)
			catalogGroup.GET("/pricing/quote", quoteHandler.GetQuote)
		}

		tickets := api.Group("/tickets")
		{
			tickets.POST("", middleware.RequireCapability(middleware.CapTicketsIssue), ticketHandler.IssueTicket)
			tickets.GET("/:id", middleware.RequireCapability(middleware.CapTicketsRead), ticketHandler.GetTicket)
			tickets.PATCH("/:id/payment", middleware.RequireCapability(middleware.CapTicketsIssue), ticketHandler.SetPaymentStatus)
		}
		api.GET("/passengers/:id/tickets", middleware.RequireCapability(middleware.CapTicketsRead), ticketHandler.ListTickets)

		tripsGroup := api.Group("/trips", middleware.RequireCapability(middleware.CapTripsRecord))
		{
			tripsGroup.POST("", tripHandler.RecordBoarding)
			tripsGroup.POST("/:id/alight", tripHandler.RecordAlighting)
			tripsGroup.GET("/:id", tripHandler.GetTrip)
		}

		positionsGroup := api.Group("", middleware.RequireCapability(middleware.CapPositionsIngest))
		{
			positionsGroup.POST("/positions", positionHandler.RecordPosition)
			positionsGroup.GET("/vehicles/:id/positions", positionHandler.ListPositions)
		}

		analyticsGroup := api.Group("/analytics", middleware.RequireCapability(middleware.CapAnalyticsCompute))
		{
			analyticsGroup.POST("/routes/:id", analyticsHandler.ComputeRouteStatistics)
			analyticsGroup.POST("/vehicles/:id", analyticsHandler.ComputeVehicleUtilization)
		}

		admin := api.Group("/admin", middleware.RequireCapability(middleware.CapCatalogAdmin))
		{
			admin.POST("/pricing/rules", ruleAdminHandler.CreateRule)
			admin.GET("/pricing/rules", ruleAdminHandler.ListRules)
			admin.PATCH("/pricing/rules/:id", ruleAdminHandler.UpdateRule)
			admin.DELETE("/pricing/rules/:id", ruleAdminHandler.DeactivateRule)
			admin.PATCH("/zones/:id/base-fare", catalogHandler.UpdateZoneBaseFare)
		}
	}

	addr := ":" + cfg.Server.Port
	logger.Info("Fare service starting", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
