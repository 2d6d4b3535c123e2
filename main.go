package main

import (
	"net/http"

	"heartlink-dating-app/internal/chat"
	"heartlink-dating-app/internal/config"
	"heartlink-dating-app/internal/database"
	"heartlink-dating-app/internal/discovery"
	"heartlink-dating-app/internal/handlers"
	"heartlink-dating-app/internal/middleware"
	"heartlink-dating-app/internal/redis"
	"heartlink-dating-app/internal/store"
	"heartlink-dating-app/internal/swipe"
	"heartlink-dating-app/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}

	cache, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		logrus.WithError(err).Warn("redis unavailable, running without cache")
		cache = nil
	} else {
		defer cache.Close()
	}

	st := store.New(db)
	discoveryService := discovery.NewService(st)
	swipeEngine := swipe.NewEngine(st, cache)
	chatService := chat.NewService(st)

	hub := ws.NewHub(chatService)
	go hub.Run()
	chatService.SetBroadcaster(hub)

	h := handlers.New(st, discoveryService, swipeEngine, chatService, cfg.JWTSecret, cfg.JWTExpiry)

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.GET("/user", middleware.AuthRequired(cfg.JWTSecret), h.CurrentUser)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthRequired(cfg.JWTSecret))
		{
			protected.GET("/profiles/me", h.GetMyProfile)
			protected.POST("/profiles", h.CreateProfile)
			protected.GET("/profiles/:id", h.GetProfileByID)

			protected.GET("/discover", h.Discover)

			protected.GET("/swipes/daily", h.DailySwipeStatus)
			protected.POST("/swipes", h.CreateSwipe)

			protected.GET("/matches", h.ListMatches)
			protected.GET("/matches/:matchId", h.GetMatch)
			protected.POST("/matches/:matchId/messages", h.SendMessage)
			protected.GET("/messages/:matchId", h.ListMessages)

			protected.POST("/reports", h.CreateReport)
			protected.POST("/blocks", h.CreateBlock)
		}
	}

	router.GET("/ws", middleware.AuthRequired(cfg.JWTSecret), func(c *gin.Context) {
		ws.ServeWS(hub, c)
	})

	logrus.WithField("port", cfg.Port).Info("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
