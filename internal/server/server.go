package server

import (
	"errors"

	"backend-yatube/internal/auth"
	"backend-yatube/internal/cache"
	"backend-yatube/internal/comment"
	"backend-yatube/internal/config"
	"backend-yatube/internal/follow"
	"backend-yatube/internal/group"
	"backend-yatube/internal/post"
	"backend-yatube/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Pages *cache.Pages
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	if cfg.CSRFProtect {
		app.Use(csrf.New(csrf.Config{
			ErrorHandler: func(c *fiber.Ctx, _ error) error {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "csrf check failed",
					"path":  c.Path(),
				})
			},
		}))
	}

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Pages: cache.NewPages(redisClient, cfg.IndexCacheTTL),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	requireUser := auth.RequireUser(s.Cfg.JWTSecret)

	comments := comment.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	group.RegisterRoutes(s.App.Group("/groups"), group.NewService(s.DB), requireUser)
	storage.RegisterRoutes(s.App.Group("/storage"), storage.NewService(s.DB), requireUser)
	comment.RegisterRoutes(s.App, comments, requireUser)
	follow.RegisterRoutes(s.App, follow.NewService(s.DB), requireUser)
	post.RegisterRoutes(s.App, post.NewService(s.DB), comments, s.Pages, requireUser)

	// anything left unmatched renders the custom 404 page
	s.App.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "page not found")
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"path":  c.Path(),
	})
}
