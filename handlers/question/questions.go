package question

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/edugenai/paper-analyzer/analysis"
	"github.com/edugenai/paper-analyzer/model"
	"github.com/edugenai/paper-analyzer/services"
	"github.com/edugenai/paper-analyzer/utils/response"
	"github.com/edugenai/paper-analyzer/utils/validation"
)

// QuestionHandler handles question bank requests
type QuestionHandler struct {
	questions *services.QuestionService
	frequency *services.FrequencyService
	validator *validation.Validator
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions *services.QuestionService, frequency *services.FrequencyService) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		frequency: frequency,
		validator: validation.NewValidator(),
	}
}

// ListQuestions handles GET /api/v1/subjects/:subject_id/questions
// Supports ?type=, ?needs_review= and ?paper_id= filters.
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	subjectID, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	filter := services.QuestionFilter{
		Type:    analysis.QuestionType(c.Query("type")),
		PaperID: uint(c.QueryInt("paper_id", 0)),
	}
	if v := c.Query("needs_review"); v != "" {
		needsReview := v == "true" || v == "1"
		filter.NeedsReview = &needsReview
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	questions, total, err := h.questions.ListQuestions(subjectID, filter, page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list questions")
	}

	responses := make([]model.QuestionResponse, len(questions))
	for i := range questions {
		responses[i] = questions[i].ToResponse()
	}

	return response.Paginated(c, responses, response.CalculatePagination(page, limit, total))
}

// AddQuestion handles POST /api/v1/subjects/:subject_id/questions
func (h *QuestionHandler) AddQuestion(c *fiber.Ctx) error {
	subjectID, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	var req services.AddQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Text = validation.SanitizeString(req.Text)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	question, err := h.questions.AddQuestion(subjectID, req)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "not found"):
			return response.NotFound(c, "Subject not found")
		case strings.Contains(msg, "options"):
			return response.BadRequest(c, msg)
		default:
			return response.InternalServerError(c, "Failed to add question")
		}
	}

	h.frequency.InvalidateCache(c.Context(), subjectID)

	return response.Created(c, question.ToResponse())
}

// ReviewQuestion handles PATCH /api/v1/questions/:question_id/review
func (h *QuestionHandler) ReviewQuestion(c *fiber.Ctx) error {
	questionID, err := parseQuestionID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid question ID")
	}

	var req services.ReviewQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	question, err := h.questions.ReviewQuestion(questionID, req)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "not found"):
			return response.NotFound(c, "Question not found")
		case strings.Contains(msg, "options"):
			return response.BadRequest(c, msg)
		default:
			return response.InternalServerError(c, "Failed to review question")
		}
	}

	return response.Success(c, question.ToResponse())
}

// DeleteQuestion handles DELETE /api/v1/questions/:question_id
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := parseQuestionID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid question ID")
	}

	if err := h.questions.DeleteQuestion(questionID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return response.NotFound(c, "Question not found")
		}
		return response.InternalServerError(c, "Failed to delete question")
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

func parseQuestionID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("question_id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
