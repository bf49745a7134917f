package server

import (
	"log"

	"xlai-be/internal/bootstrap"
	"xlai-be/internal/config"
	"xlai-be/internal/pkg/serverutils"
	ws "xlai-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Smoke-Test",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.HealthController.RegisterRoutes(app)
	c.AiController.RegisterRoutes(app)
	c.MessageController.RegisterRoutes(app)
	c.ContactController.RegisterRoutes(app)
	c.AuthController.RegisterRoutes(app)

	// Websocket upgrade for live delivery, keyed by user handle.
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/:userId", websocket.New(func(conn *websocket.Conn) {
		ws.ServeWs(c.WebSocketHub, conn, conn.Params("userId"))
	}))
}
