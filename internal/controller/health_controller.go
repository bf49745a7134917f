package controller

import (
	"xlai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	ApiHealth(ctx *fiber.Ctx) error
	DbHealth(ctx *fiber.Ctx) error
}

type healthController struct {
	messageService service.IMessageService
}

func NewHealthController(messageService service.IMessageService) IHealthController {
	return &healthController{
		messageService: messageService,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/api/health", c.ApiHealth)
	r.Get("/api/db-health", c.DbHealth)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.SendString("healthy")
}

func (c *healthController) ApiHealth(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"ok": true})
}

func (c *healthController) DbHealth(ctx *fiber.Ctx) error {
	res, err := c.messageService.DbHealth(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
