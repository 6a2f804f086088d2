package resumeapi

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/hirewire/resumeparser/pkg/kernel"
	"github.com/hirewire/resumeparser/resume"
	"github.com/hirewire/resumeparser/resume/resumesrv"
)

// Handlers provides HTTP handlers for resume parsing and retrieval
type Handlers struct {
	service *resumesrv.Service
}

// NewHandlers creates a new resume handlers instance
func NewHandlers(service *resumesrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// RegisterRoutes registers the resume routes on the app
func RegisterRoutes(app *fiber.App, h *Handlers) {
	app.Post("/parse-resume/", h.ParseResume)
	app.Get("/resumes/search/", h.SearchResumeByEmail)
	app.Get("/resumes/", h.ListResumes)
	app.Get("/resumes/:id", h.GetResumeByID)
	app.Delete("/resumes/:id", h.DeleteResume)
}

// ParseResume runs the pipeline on an uploaded file
// POST /parse-resume/
func (h *Handlers) ParseResume(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return resume.ErrUnsupportedFormat().WithDetail("form_error", err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return resume.ErrCorruptDocument().WithDetail("open_error", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return resume.ErrCorruptDocument().WithDetail("read_error", err.Error())
	}

	record, err := h.service.ParseAndStore(c.Context(), resume.ParseResumeRequest{
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// GetResumeByID retrieves a stored resume by id
// GET /resumes/:id
func (h *Handlers) GetResumeByID(c *fiber.Ctx) error {
	id, err := kernel.ParseResumeID(c.Params("id"))
	if err != nil {
		return resume.ErrResumeNotFound().WithDetail("id", c.Params("id"))
	}

	record, err := h.service.GetResumeByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// SearchResumeByEmail retrieves a stored resume by candidate email
// GET /resumes/search/?email=
func (h *Handlers) SearchResumeByEmail(c *fiber.Ctx) error {
	email := kernel.Email(c.Query("email"))
	if email.IsEmpty() {
		return resume.ErrEmailNotFound().WithDetail("email", "missing or empty")
	}

	record, err := h.service.GetResumeByEmail(c.Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// ListResumes retrieves all stored resumes
// GET /resumes/
func (h *Handlers) ListResumes(c *fiber.Ctx) error {
	records, err := h.service.ListResumes(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(records)
}

// DeleteResume deletes a stored resume by id
// DELETE /resumes/:id
func (h *Handlers) DeleteResume(c *fiber.Ctx) error {
	id, err := kernel.ParseResumeID(c.Params("id"))
	if err != nil {
		return resume.ErrResumeNotFound().WithDetail("id", c.Params("id"))
	}

	confirmation, err := h.service.DeleteResume(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(confirmation)
}
