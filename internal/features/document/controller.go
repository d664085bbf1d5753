package document

import (
	"path/filepath"

	"go-casework/internal/config"

	"github.com/gofiber/fiber/v2"
)

type DocumentController struct {
	Service DocumentService
	Config  *config.Config
}

func NewDocumentController(service DocumentService, cfg *config.Config) *DocumentController {
	return &DocumentController{Service: service, Config: cfg}
}

// UploadDocument godoc
// @Summary Upload a document for a case
// @Tags documents
// @Accept mpfd
// @Produce json
// @Param caseId formData string true "Case ID"
// @Param file formData file true "File"
// @Success 201 {object} Document
// @Router /api/documents [post]
func (ctrl *DocumentController) UploadDocument(c *fiber.Ctx) error {
	caseID := c.FormValue("caseId")
	if caseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "caseId is required"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	doc, err := ctrl.Service.Register(c.UserContext(), caseID, file.Filename,
		file.Header.Get("Content-Type"), file.Size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.SaveFile(file, filepath.Join(ctrl.Config.FSPath, doc.StoredKey)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store file"})
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (ctrl *DocumentController) DownloadDocument(c *fiber.Ctx) error {
	doc, err := ctrl.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}
	return c.Download(filepath.Join(ctrl.Config.FSPath, doc.StoredKey), doc.FileName)
}

func (ctrl *DocumentController) ListByCase(c *fiber.Ctx) error {
	docs, err := ctrl.Service.ListByCase(c.UserContext(), c.Params("caseId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(docs)
}

func (ctrl *DocumentController) DeleteDocument(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
