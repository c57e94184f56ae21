package frequency

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/edugenai/paper-analyzer/services"
	"github.com/edugenai/paper-analyzer/utils/response"
)

// FrequencyHandler serves question frequency reports
type FrequencyHandler struct {
	service *services.FrequencyService
}

// NewFrequencyHandler creates a new frequency handler
func NewFrequencyHandler(service *services.FrequencyService) *FrequencyHandler {
	return &FrequencyHandler{service: service}
}

// GetReport handles GET /api/v1/subjects/:subject_id/frequency
// Serves the cached report when fresh; pass ?refresh=true to force a
// recomputation.
func (h *FrequencyHandler) GetReport(c *fiber.Ctx) error {
	subjectID, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	if c.QueryBool("refresh", false) {
		h.service.InvalidateCache(c.Context(), subjectID)
	}

	report, err := h.service.GetReport(c.Context(), subjectID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to compute frequency report")
	}

	return response.Success(c, fiber.Map{
		"threshold": h.service.Threshold(),
		"report":    report,
	})
}

// ListSnapshots handles GET /api/v1/subjects/:subject_id/frequency/history
func (h *FrequencyHandler) ListSnapshots(c *fiber.Ctx) error {
	subjectID, err := parseSubjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	limit := c.QueryInt("limit", 20)
	snapshots, err := h.service.ListSnapshots(subjectID, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list report history")
	}

	return response.Success(c, fiber.Map{
		"snapshots": snapshots,
		"total":     len(snapshots),
	})
}

func parseSubjectID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("subject_id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
