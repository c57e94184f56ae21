package paper

import (
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/edugenai/paper-analyzer/model"
	"github.com/edugenai/paper-analyzer/services"
	"github.com/edugenai/paper-analyzer/utils/response"
	"github.com/edugenai/paper-analyzer/utils/validation"
)

// PaperHandler handles question paper upload and retrieval
type PaperHandler struct {
	papers    *services.PaperService
	frequency *services.FrequencyService
	validator *validation.Validator
}

// NewPaperHandler creates a new paper handler
func NewPaperHandler(papers *services.PaperService, frequency *services.FrequencyService) *PaperHandler {
	return &PaperHandler{
		papers:    papers,
		frequency: frequency,
		validator: validation.NewValidator(),
	}
}

// UploadPaper handles POST /api/v1/subjects/:subject_id/papers
// Accepts a multipart PDF upload with optional title/year/exam_type fields.
func (h *PaperHandler) UploadPaper(c *fiber.Ctx) error {
	subjectID, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Missing paper file (field \"file\")")
	}

	meta := services.PaperMeta{
		Title:    validation.SanitizeString(c.FormValue("title")),
		ExamType: validation.SanitizeString(c.FormValue("exam_type")),
	}
	if yearStr := c.FormValue("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return response.BadRequest(c, "Invalid year")
		}
		meta.Year = year
	}
	if err := h.validator.ValidateStruct(meta); err != nil {
		return response.ValidationError(c, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to open upload")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}

	result, err := h.papers.IngestPaper(c.Context(), subjectID, fileHeader.Filename, content, meta)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "not found"):
			return response.NotFound(c, "Subject not found")
		case strings.Contains(msg, "invalid paper upload"):
			return response.BadRequest(c, msg)
		case strings.Contains(msg, "extraction failed"):
			return response.ErrorWithDetails(c, fiber.StatusUnprocessableEntity,
				"Could not extract text from paper", "EXTRACTION_FAILED", msg)
		default:
			return response.InternalServerError(c, "Failed to ingest paper")
		}
	}

	// New questions invalidate any cached frequency report for the subject
	h.frequency.InvalidateCache(c.Context(), subjectID)

	questions := make([]model.QuestionResponse, len(result.Questions))
	for i := range result.Questions {
		questions[i] = result.Questions[i].ToResponse()
	}

	return response.Created(c, fiber.Map{
		"paper":       result.Paper.ToResponse(),
		"questions":   questions,
		"diagnostics": result.Diagnostics,
	})
}

// ListPapers handles GET /api/v1/subjects/:subject_id/papers
func (h *PaperHandler) ListPapers(c *fiber.Ctx) error {
	subjectID, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	papers, err := h.papers.ListPapers(subjectID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list papers")
	}

	responses := make([]model.PaperResponse, len(papers))
	for i := range papers {
		responses[i] = papers[i].ToResponse()
	}

	return response.Success(c, fiber.Map{
		"papers": responses,
		"total":  len(responses),
	})
}

// GetPaper handles GET /api/v1/papers/:document_uid
func (h *PaperHandler) GetPaper(c *fiber.Ctx) error {
	documentUID := c.Params("document_uid")
	if documentUID == "" {
		return response.BadRequest(c, "Missing document UID")
	}

	paper, err := h.papers.GetPaper(documentUID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return response.NotFound(c, "Paper not found")
		}
		return response.InternalServerError(c, "Failed to fetch paper")
	}

	return response.Success(c, paper.ToResponse())
}

// DeletePaper handles DELETE /api/v1/papers/:document_uid
func (h *PaperHandler) DeletePaper(c *fiber.Ctx) error {
	documentUID := c.Params("document_uid")
	if documentUID == "" {
		return response.BadRequest(c, "Missing document UID")
	}

	paper, err := h.papers.GetPaper(documentUID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return response.NotFound(c, "Paper not found")
		}
		return response.InternalServerError(c, "Failed to fetch paper")
	}

	if err := h.papers.DeletePaper(documentUID); err != nil {
		return response.InternalServerError(c, "Failed to delete paper")
	}

	h.frequency.InvalidateCache(c.Context(), paper.SubjectID)

	return response.NoContent(c)
}

func parseSubjectID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("subject_id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
