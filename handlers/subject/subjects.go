package subject

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/edugenai/paper-analyzer/model"
	"github.com/edugenai/paper-analyzer/services"
	"github.com/edugenai/paper-analyzer/utils/response"
	"github.com/edugenai/paper-analyzer/utils/validation"
)

// SubjectHandler handles subject CRUD requests
type SubjectHandler struct {
	service   *services.SubjectService
	validator *validation.Validator
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(service *services.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateSubject handles POST /api/v1/subjects
func (h *SubjectHandler) CreateSubject(c *fiber.Ctx) error {
	var req services.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Name = validation.SanitizeString(req.Name)
	req.Code = validation.SanitizeString(req.Code)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	subject, err := h.service.CreateSubject(req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return response.Conflict(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to create subject")
	}

	return response.Created(c, subject.ToResponse())
}

// ListSubjects handles GET /api/v1/subjects
func (h *SubjectHandler) ListSubjects(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	subjects, total, err := h.service.ListSubjects(page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list subjects")
	}

	responses := make([]model.SubjectResponse, len(subjects))
	for i := range subjects {
		responses[i] = subjects[i].ToResponse()
	}

	return response.Paginated(c, responses, response.CalculatePagination(page, limit, total))
}

// GetSubject handles GET /api/v1/subjects/:subject_id
func (h *SubjectHandler) GetSubject(c *fiber.Ctx) error {
	id, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	subject, err := h.service.GetSubject(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to fetch subject")
	}

	return response.Success(c, subject.ToResponse())
}

// UpdateSubject handles PATCH /api/v1/subjects/:subject_id
func (h *SubjectHandler) UpdateSubject(c *fiber.Ctx) error {
	id, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	var req services.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	subject, err := h.service.UpdateSubject(id, req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to update subject")
	}

	return response.Success(c, subject.ToResponse())
}

// DeleteSubject handles DELETE /api/v1/subjects/:subject_id
func (h *SubjectHandler) DeleteSubject(c *fiber.Ctx) error {
	id, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	if err := h.service.DeleteSubject(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to delete subject")
	}

	return response.NoContent(c)
}

func parseSubjectID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("subject_id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
