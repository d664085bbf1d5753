package note

import (
	"github.com/gofiber/fiber/v2"
)

type NoteController struct {
	Service NoteService
}

func NewNoteController(service NoteService) *NoteController {
	return &NoteController{Service: service}
}

func (ctrl *NoteController) CreateNote(c *fiber.Ctx) error {
	var n Note
	if err := c.BodyParser(&n); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.Create(c.UserContext(), &n); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (ctrl *NoteController) ListByCase(c *fiber.Ctx) error {
	notes, err := ctrl.Service.ListByCase(c.UserContext(), c.Params("caseId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(notes)
}

func (ctrl *NoteController) DeleteNote(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
