package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"market-service/internal/agent"
	"market-service/internal/config"
	"market-service/internal/handlers"
	"market-service/internal/middleware"
	"market-service/internal/models"
	"market-service/internal/observability"
	"market-service/internal/rabbitmq"
	"market-service/internal/repositories"
	"market-service/internal/telemetry"
	"market-service/internal/tracing"
)

func main() {
	cfg := config.Load()

	shutdownTracing, err := tracing.Init(context.Background(), "market-service", cfg.Environment, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown error: %v", err)
		}
	}()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()
	log.Printf("audit publisher mode=%s", rabbitmq.PublisherMode(publisher))

	emitter := telemetry.NewAuditEmitter(publisher, cfg.AuditRoutingKey, "market-service", cfg.Environment)

	userRepo := repositories.NewUserRepo([]models.User{repositories.DemoUser})
	listingRepo := repositories.NewListingRepo()
	conversationRepo := repositories.NewConversationRepo()

	if cfg.SeedDemo {
		seed := repositories.DemoListings(time.Now().UTC(), repositories.DemoUser)
		listingRepo.Load(seed)
		log.Printf("seeded %d demo listings", len(seed))
	}

	parser := agent.NewParser(cfg.AgentEndpoint)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	listingHandler := handlers.NewListingHandler(listingRepo, userRepo, parser, emitter)
	chatHandler := handlers.NewChatHandler(conversationRepo, listingRepo, emitter)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("market-service"))
	router.Use(observability.HTTPMetricsMiddleware())

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/register", authHandler.Register)

	router.GET("/profile", authMiddleware, authHandler.GetProfile)
	router.PATCH("/profile", authMiddleware, authHandler.UpdateProfile)
	router.GET("/profile/unread", authMiddleware, chatHandler.Unread)

	router.GET("/listings", listingHandler.List)
	router.GET("/listings/:id", listingHandler.Get)
	router.POST("/listings", authMiddleware, listingHandler.Create)
	router.DELETE("/listings/:id", authMiddleware, listingHandler.Delete)

	router.GET("/search/suggestions", listingHandler.Suggestions)
	router.POST("/agent/parse", authMiddleware, listingHandler.Parse)

	router.GET("/chats", authMiddleware, chatHandler.ListSessions)
	router.POST("/chats/start", authMiddleware, chatHandler.Start)
	router.GET("/chats/:chat_id/messages", authMiddleware, chatHandler.GetMessages)
	router.POST("/chats/:chat_id/messages", authMiddleware, chatHandler.PostMessage)
	router.POST("/chats/:chat_id/messages/:message_id/respond", authMiddleware, chatHandler.RespondToOffer)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterDebugRoutes(router, emitter, cfg.DebugRoutes)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
