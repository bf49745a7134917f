package controller

import (
	"xlai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContactController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type contactController struct {
	contactService service.IContactService
}

func NewContactController(contactService service.IContactService) IContactController {
	return &contactController{
		contactService: contactService,
	}
}

func (c *contactController) RegisterRoutes(r fiber.Router) {
	r.Get("/api/contacts", c.List)
}

func (c *contactController) List(ctx *fiber.Ctx) error {
	res, err := c.contactService.ListContacts(ctx.Context(), ctx.Query("userId"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
