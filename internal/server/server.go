// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/media"
	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/notifications"
	"warbler/internal/repository"
	"warbler/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo       repository.UserRepository
	tweetRepo      repository.TweetRepository
	socialRepo     repository.SocialRepository
	engagementRepo repository.EngagementRepository
	messageRepo    repository.MessageRepository
	groupRepo      repository.GroupRepository

	userService       *service.UserService
	tweetService      *service.TweetService
	socialService     *service.SocialService
	engagementService *service.EngagementService
	messageService    *service.MessageService
	groupService      *service.GroupService

	notifier *notifications.Notifier
	hub      *notifications.Hub
	media    *media.Store
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	store, err := media.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("media store init failed: %w", err)
	}

	prom := middleware.InitMetrics("warbler-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       repository.NewUserRepository(db),
		tweetRepo:      repository.NewTweetRepository(db),
		socialRepo:     repository.NewSocialRepository(db),
		engagementRepo: repository.NewEngagementRepository(db),
		messageRepo:    repository.NewMessageRepository(db),
		groupRepo:      repository.NewGroupRepository(db),
		media:          store,
	}

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
		server.hub = notifications.NewHub(server.groupMemberIDs)
	}

	server.userService = service.NewUserService(server.userRepo)
	server.tweetService = service.NewTweetService(server.tweetRepo, server.userRepo)
	server.socialService = service.NewSocialService(server.socialRepo, server.userRepo)
	server.engagementService = service.NewEngagementService(server.engagementRepo, server.tweetRepo)
	server.groupService = service.NewGroupService(server.groupRepo, server.userRepo)

	var notifier service.Notifier
	if server.notifier != nil {
		notifier = server.notifier
	}
	server.messageService = service.NewMessageService(
		server.messageRepo, server.groupRepo, server.socialRepo, server.userRepo, notifier)

	return server, nil
}

// groupMemberIDs resolves group membership for realtime fan-out.
func (s *Server) groupMemberIDs(ctx context.Context, groupID uint) ([]uint, error) {
	members, err := s.groupRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate request ID and user ID into the request context
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (200 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        200,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Stored uploads
	app.Get("/media/:name", s.ServeMedia)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// User routes
	users := protected.Group("/users")
	users.Get("/", s.GetAllUsers)
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Delete("/me", s.DeleteMyAccount)
	// Specific /:id/:resource routes BEFORE generic /:id route
	users.Get("/:id/tweets", s.GetUserTweets)
	users.Get("/:id/followers", s.GetFollowers)
	users.Get("/:id/following", s.GetFollowing)
	users.Post("/:id/follow", s.FollowUser)
	users.Delete("/:id/follow", s.UnfollowUser)
	users.Post("/:id/block", s.BlockUser)
	users.Delete("/:id/block", s.UnblockUser)
	users.Get("/:id", s.GetUserProfile)

	// Tweet routes
	tweets := protected.Group("/tweets")
	tweets.Post("/", middleware.RateLimit(
		s.redis, 30, time.Minute, "create_tweet"), s.CreateTweet)
	tweets.Get("/feed", s.GetHomeFeed)
	tweets.Post("/:id/like", s.LikeTweet)
	tweets.Delete("/:id/like", s.UnlikeTweet)
	tweets.Post("/:id/retweet", s.RetweetTweet)
	tweets.Delete("/:id/retweet", s.UnretweetTweet)
	tweets.Post("/:id/replies", middleware.RateLimit(
		s.redis, 30, time.Minute, "create_reply"), s.CreateReply)
	tweets.Get("/:id/replies", s.GetReplies)
	tweets.Post("/:id/view", s.RecordTweetView)
	tweets.Get("/:id", s.GetTweet)
	tweets.Delete("/:id", s.DeleteTweet)

	// Message routes
	messages := protected.Group("/messages")
	messages.Post("/", middleware.RateLimit(
		s.redis, 60, time.Minute, "send_message"), s.SendMessage)
	messages.Get("/unread/count", s.GetUnreadCount)
	messages.Get("/with/:userId", s.GetConversation)
	messages.Post("/:id/reactions", s.ReactToMessage)
	messages.Delete("/:id/reactions", s.RemoveReaction)
	messages.Post("/:id/read", s.MarkMessageRead)
	messages.Delete("/:id", s.DeleteMessageForMe)

	// Group routes
	groups := protected.Group("/groups")
	groups.Post("/", s.CreateGroup)
	groups.Get("/me", s.GetMyGroups)
	groups.Get("/:id/members", s.GetGroupMembers)
	groups.Post("/:id/members", s.JoinGroup)
	groups.Delete("/:id/members/me", s.LeaveGroup)
	groups.Get("/:id/messages", s.GetGroupMessages)
	groups.Get("/:id", s.GetGroup)

	// Media upload
	protected.Post("/media", s.UploadMedia)

	// Websocket endpoint (token via query parameter)
	api.Get("/ws", middleware.WebSocketAuthRequired, s.WebsocketHandler())
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional; the API serves without realtime delivery.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName:   "Warbler API",
		BodyLimit: 12 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	if s.notifier != nil && s.hub != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				middleware.Logger.Error("start hub wiring", "error", err)
			}
		}()
	}

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("shutdown http server", "error", err)
		}
	}

	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			middleware.Logger.Error("shutdown hub", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("close sql db", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("close redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
