package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/sirupsen/logrus"

	"github.com/devconnect/devconnect-api/internal/config"
	"github.com/devconnect/devconnect-api/internal/database"
	"github.com/devconnect/devconnect-api/internal/handlers"
	"github.com/devconnect/devconnect-api/internal/liveblocks"
	authmw "github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/internal/pubsub"
	"github.com/devconnect/devconnect-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to redis")
	}

	var bus pubsub.Bus
	if redisClient != nil {
		bus = pubsub.NewRedisBus(redisClient)
		logrus.Info("using redis event bus")
	} else {
		bus = pubsub.NewMemoryBus()
		logrus.Info("REDIS_URL not set, using in-process event bus")
	}
	defer bus.Close()

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	userService := services.NewUserService(db)
	tenantService := services.NewTenantService(db)
	teamService := services.NewTeamService(db)
	projectService := services.NewProjectService(db)
	documentService := services.NewDocumentService(db)
	channelService := services.NewChannelService(db)
	messageService := services.NewMessageService(db)
	taskService := services.NewTaskService(db)

	liveblocksClient := liveblocks.New(cfg.LiveblocksSecretKey, cfg.LiveblocksBaseURL)
	publisher := handlers.NewPublisher(bus)

	authHandler := handlers.NewAuthHandler(userService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService, tenantService)
	projectHandler := handlers.NewProjectHandler(projectService, tenantService)
	documentHandler := handlers.NewDocumentHandler(documentService, tenantService)
	channelHandler := handlers.NewChannelHandler(channelService, messageService, tenantService, publisher)
	taskHandler := handlers.NewTaskHandler(taskService, tenantService, publisher)
	liveblocksHandler := handlers.NewLiveblocksHandler(liveblocksClient, tenantService)
	subscriptionHandler := handlers.NewSubscriptionHandler(bus, tenantService, jwtService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	app.Get("/healthz", func(c *drift.Context) {
		_ = c.JSON(200, map[string]bool{"ok": true})
	})

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)

	// Identity comes from a query token or an init frame, so the websocket
	// route sits outside the auth middleware.
	api.Get("/subscribe", subscriptionHandler.Connect)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/me", userHandler.GetMe)

	protected.Get("/teams", teamHandler.List)
	protected.Post("/teams", teamHandler.Create)
	protected.Get("/teams/:teamId", teamHandler.Get)
	protected.Post("/teams/:teamId/members", teamHandler.AddMember)
	protected.Delete("/teams/:teamId/members/:userId", teamHandler.RemoveMember)

	protected.Get("/teams/:teamId/projects", projectHandler.List)
	protected.Post("/teams/:teamId/projects", projectHandler.Create)
	protected.Delete("/projects/:projectId", projectHandler.Delete)

	protected.Get("/projects/:projectId/documents", documentHandler.List)
	protected.Post("/projects/:projectId/documents", documentHandler.Create)
	protected.Get("/documents/:documentId", documentHandler.Get)
	protected.Patch("/documents/:documentId", documentHandler.Update)
	protected.Put("/documents/:documentId/content", documentHandler.UpdateContent)
	protected.Delete("/documents/:documentId", documentHandler.Delete)

	protected.Get("/projects/:projectId/channels", channelHandler.List)
	protected.Post("/projects/:projectId/channels", channelHandler.Create)
	protected.Delete("/channels/:channelId", channelHandler.Delete)
	protected.Get("/channels/:channelId/messages", channelHandler.ListMessages)
	protected.Post("/channels/:channelId/messages", channelHandler.SendMessage)

	protected.Get("/projects/:projectId/tasks", taskHandler.List)
	protected.Post("/projects/:projectId/tasks", taskHandler.Create)
	protected.Patch("/tasks/:taskId", taskHandler.Update)
	protected.Put("/tasks/:taskId/status", taskHandler.UpdateStatus)
	protected.Put("/tasks/:taskId/assignees", taskHandler.Assign)
	protected.Delete("/tasks/:taskId", taskHandler.Delete)

	protected.Post("/liveblocks-auth", liveblocksHandler.Authorize)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logrus.WithField("addr", addr).Info("server starting")
		if err := app.Run(addr); err != nil {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
}
