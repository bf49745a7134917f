package controller

import (
	"xlai-be/internal/dto"
	"xlai-be/internal/pkg/serverutils"
	"xlai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Signup(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
	jwtSecret   string
}

func NewAuthController(authService service.IAuthService, jwtSecret string) IAuthController {
	return &authController{
		authService: authService,
		jwtSecret:   jwtSecret,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api")
	h.Post("/signup", c.Signup)
	h.Post("/login", c.Login)
	h.Get("/me", serverutils.JwtMiddleware(c.jwtSecret), c.Me)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Signup(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.authService.Me(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch profile", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
