package appointment

import (
	"github.com/gofiber/fiber/v2"
)

type AppointmentController struct {
	Service AppointmentService
}

func NewAppointmentController(service AppointmentService) *AppointmentController {
	return &AppointmentController{Service: service}
}

func (ctrl *AppointmentController) CreateAppointment(c *fiber.Ctx) error {
	var a Appointment
	if err := c.BodyParser(&a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.Create(c.UserContext(), &a); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (ctrl *AppointmentController) ListByCase(c *fiber.Ctx) error {
	appointments, err := ctrl.Service.ListByCase(c.UserContext(), c.Params("caseId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(appointments)
}

func (ctrl *AppointmentController) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		Status AppointmentStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status is required"})
	}

	if err := ctrl.Service.UpdateStatus(c.UserContext(), c.Params("id"), body.Status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": body.Status})
}

func (ctrl *AppointmentController) DeleteAppointment(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
