package mocktest

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/edugenai/paper-analyzer/services"
	"github.com/edugenai/paper-analyzer/utils/response"
	"github.com/edugenai/paper-analyzer/utils/validation"
)

// TestHandler handles mock test generation and retrieval
type TestHandler struct {
	testgen   *services.TestGenService
	validator *validation.Validator
}

// NewTestHandler creates a new mock test handler
func NewTestHandler(testgen *services.TestGenService) *TestHandler {
	return &TestHandler{
		testgen:   testgen,
		validator: validation.NewValidator(),
	}
}

// GenerateTest handles POST /api/v1/subjects/:subject_id/tests
func (h *TestHandler) GenerateTest(c *fiber.Ctx) error {
	subjectID, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	var req services.GenerateTestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	test, err := h.testgen.GenerateTest(c.Context(), subjectID, req)
	if err != nil {
		if strings.Contains(err.Error(), "no questions") {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to generate test")
	}

	return response.Created(c, test)
}

// GetTest handles GET /api/v1/tests/:test_uid
func (h *TestHandler) GetTest(c *fiber.Ctx) error {
	testUID := c.Params("test_uid")
	if testUID == "" {
		return response.BadRequest(c, "Missing test UID")
	}

	test, err := h.testgen.GetTest(testUID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return response.NotFound(c, "Test not found")
		}
		return response.InternalServerError(c, "Failed to fetch test")
	}

	return response.Success(c, test)
}

// ListTests handles GET /api/v1/subjects/:subject_id/tests
func (h *TestHandler) ListTests(c *fiber.Ctx) error {
	subjectID, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	tests, err := h.testgen.ListTests(subjectID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tests")
	}

	return response.Success(c, fiber.Map{
		"tests": tests,
		"total": len(tests),
	})
}

func parseSubjectID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("subject_id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
