package messaging

import (
	"github.com/gofiber/fiber/v2"
)

type MessagingController struct {
	Service MessagingService
}

func NewMessagingController(service MessagingService) *MessagingController {
	return &MessagingController{Service: service}
}

type SendRequest struct {
	CaseID    string `json:"caseId"`
	ClientID  string `json:"clientId"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// SendSMS godoc
// @Summary Send an SMS to a client
// @Tags messaging
// @Accept json
// @Produce json
// @Param input body SendRequest true "Message"
// @Router /api/messages/sms [post]
func (ctrl *MessagingController) SendSMS(c *fiber.Ctx) error {
	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Recipient == "" || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "recipient and body are required"})
	}

	m, err := ctrl.Service.SendSMS(c.UserContext(), req.CaseID, req.ClientID, req.Recipient, req.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "message": m})
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (ctrl *MessagingController) SendEmail(c *fiber.Ctx) error {
	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Recipient == "" || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "recipient and body are required"})
	}

	m, err := ctrl.Service.SendEmail(c.UserContext(), req.CaseID, req.ClientID, req.Recipient, req.Subject, req.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "message": m})
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (ctrl *MessagingController) ListByCase(c *fiber.Ctx) error {
	messages, err := ctrl.Service.ListByCase(c.UserContext(), c.Params("caseId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(messages)
}
