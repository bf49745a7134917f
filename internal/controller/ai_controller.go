package controller

import (
	"xlai-be/internal/dto"
	"xlai-be/internal/pkg/serverutils"
	"xlai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAiController interface {
	RegisterRoutes(r fiber.Router)
	Rephrase(ctx *fiber.Ctx) error
	AnalyzeIntensity(ctx *fiber.Ctx) error
}

type aiController struct {
	aiService service.IAiService
}

func NewAiController(aiService service.IAiService) IAiController {
	return &aiController{
		aiService: aiService,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api")
	h.Post("/rephrase", c.Rephrase)
	h.Post("/analyze-intensity", c.AnalyzeIntensity)
}

func (c *aiController) Rephrase(ctx *fiber.Ctx) error {
	var req dto.RephraseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.Rephrase(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *aiController) AnalyzeIntensity(ctx *fiber.Ctx) error {
	var req dto.AnalyzeIntensityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.AnalyzeIntensity(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
