package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"chat_backend/internal/config"
	"chat_backend/internal/handler"
	"chat_backend/internal/middleware"
	"chat_backend/internal/repository"
	"chat_backend/internal/service"
	"chat_backend/internal/ws"
	"chat_backend/pkg/logger"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	appLogger := logger.New(cfg.Log.Level)

	// Подключение к PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN)
	if err != nil {
		appLogger.Fatal("Failed to parse database DSN", "error", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConnections)
	poolCfg.MaxConnIdleTime = cfg.Database.MaxIdleTime
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		appLogger.Fatal("Failed to ping database", "error", err)
	}
	appLogger.Info("Database connection established")

	// Подключение к Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("Failed to connect to Redis", "error", err)
	}
	appLogger.Info("Redis connection established")

	// Realtime-хаб
	hub := ws.NewHub(appLogger)

	// Репозитории и сервисы
	repos := repository.NewRepositories(dbPool, rdb, appLogger)
	services := service.NewServices(repos, cfg, hub, appLogger)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(services.Auth, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(services.RateLimit, cfg.RateLimit.Limit, cfg.RateLimit.Window, appLogger)

	// Handlers
	handlers := handler.NewHandlers(services, hub, cfg, appLogger)

	// Роутер
	router := setupRouter(handlers, authMiddleware, rateLimitMiddleware, cfg, appLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		appLogger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func setupRouter(
	handlers *handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cfg *config.Config,
	log logger.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(log))

	// Health check
	router.GET("/health", handlers.Health.Check)

	api := router.Group("/api")
	{
		// Публичные endpoints
		users := api.Group("/users")
		{
			users.POST("/register", rateLimitMiddleware.Limit(), handlers.Auth.Register)
			users.POST("/login", rateLimitMiddleware.Limit(), handlers.Auth.Login)
		}

		// Защищенные endpoints
		protected := api.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			chats := protected.Group("/chats")
			{
				chats.GET("", handlers.Chat.GetUserChats)
				chats.POST("", handlers.Chat.CreateChat)
				chats.GET("/:chatId", handlers.Chat.GetChatByID)

				chats.GET("/:chatId/messages", handlers.Message.GetChatMessages)
				chats.POST("/:chatId/messages", handlers.Message.SendMessage)
				chats.GET("/:chatId/messages/:messageId", handlers.Message.GetMessageByID)
				chats.PUT("/:chatId/messages/:messageId", handlers.Message.EditMessage)
				chats.DELETE("/:chatId/messages/:messageId", handlers.Message.DeleteMessage)
			}

			search := protected.Group("/search")
			{
				search.GET("/messages", handlers.Search.SearchMessages)
				search.GET("/chats/:chatId/messages", handlers.Search.SearchMessagesByChat)
			}
		}
	}

	// WebSocket endpoint для realtime-доставки
	router.GET("/ws/chat", authMiddleware.RequireAuth(), handlers.WebSocket.HandleChat)

	return router
}
