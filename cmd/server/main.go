package main

import (
	"context"
	"fmt"
	stdlog "log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/alumlink/alumlink-api/comments"
	commentHandlers "github.com/alumlink/alumlink-api/comments/handlers"
	commentRepository "github.com/alumlink/alumlink-api/comments/repository"
	commentServices "github.com/alumlink/alumlink-api/comments/services"
	"github.com/alumlink/alumlink-api/counters"
	"github.com/alumlink/alumlink-api/internal/cache"
	"github.com/alumlink/alumlink-api/internal/database/postgres"
	"github.com/alumlink/alumlink-api/internal/middleware/requestid"
	"github.com/alumlink/alumlink-api/internal/pkg/log"
	platformconfig "github.com/alumlink/alumlink-api/internal/platform/config"
	"github.com/alumlink/alumlink-api/likes"
	likeHandlers "github.com/alumlink/alumlink-api/likes/handlers"
	likeRepository "github.com/alumlink/alumlink-api/likes/repository"
	likeServices "github.com/alumlink/alumlink-api/likes/services"
	"github.com/alumlink/alumlink-api/replies"
	replyHandlers "github.com/alumlink/alumlink-api/replies/handlers"
	replyRepository "github.com/alumlink/alumlink-api/replies/repository"
	replyServices "github.com/alumlink/alumlink-api/replies/services"
	targetRepository "github.com/alumlink/alumlink-api/targets/repository"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		stdlog.Fatalf("Failed to load platform config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		stdlog.Fatalf("Failed to create postgres client: %v", err)
	}
	defer pgClient.Close()

	cacheService := buildCacheService(cfg)

	// Repositories
	commentRepo := commentRepository.NewPostgresCommentRepository(pgClient)
	replyRepo := replyRepository.NewPostgresReplyRepository(pgClient)
	likeRepo := likeRepository.NewPostgresLikeRepository(pgClient)
	targetRepo := targetRepository.NewPostgresTargetRepository(pgClient)

	// Counter engine over the repositories; services call it best-effort
	counterEngine := counters.NewEngine(commentRepo, replyRepo, likeRepo, targetRepo)

	// Services
	commentService := commentServices.NewCommentService(
		commentRepo, replyRepo, likeRepo, targetRepo, counterEngine, cacheService, cfg)
	replyService := replyServices.NewReplyService(
		replyRepo, commentRepo, counterEngine, cacheService, cfg)
	likeService := likeServices.NewLikeService(
		likeRepo, commentRepo, replyRepo, targetRepo, counterEngine, cacheService)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if len(c.Response().Body()) > 0 {
				return nil
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   "INTERNAL_ERROR",
				"message": err.Error(),
			})
		},
	})

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.WebDomain,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	comments.RegisterRoutes(app, &comments.CommentsHandlers{
		CommentHandler: commentHandlers.NewCommentHandler(commentService),
	}, cfg)
	replies.RegisterRoutes(app, &replies.RepliesHandlers{
		ReplyHandler: replyHandlers.NewReplyHandler(replyService),
	}, cfg)
	likes.RegisterRoutes(app, &likes.LikesHandlers{
		LikeHandler: likeHandlers.NewLikeHandler(likeService),
	}, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting %s on %s", cfg.App.Name, addr)
	if err := app.Listen(addr); err != nil {
		stdlog.Fatalf("Server stopped: %v", err)
	}
}

// buildCacheService assembles the list cache from config. A disabled or
// misconfigured cache degrades to nil and every read goes to the database.
func buildCacheService(cfg *platformconfig.Config) *cache.GenericCacheService {
	if !cfg.Cache.Enabled {
		return nil
	}

	cacheConfig := cache.ConfigFromPlatform(cfg.Cache)
	backend, err := cache.NewCacheFactory().CreateCache(cacheConfig)
	if err != nil {
		log.Warn("Cache backend unavailable, continuing without cache: %v", err)
		return nil
	}

	return cache.NewGenericCacheService(backend, cacheConfig)
}
