package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/edugenai/paper-analyzer/analysis"
	"github.com/edugenai/paper-analyzer/services/inference"
	"github.com/edugenai/paper-analyzer/utils"
)

// DistractorService generates MCQ answer options using the inference API.
// It implements analysis.DistractorGenerator. When no API key is configured
// the service is disabled and callers fall back to placeholder options.
type DistractorService struct {
	client *inference.Client
}

// NewDistractorService creates a new distractor service
func NewDistractorService() *DistractorService {
	apiKey := os.Getenv("DO_INFERENCE_API_KEY")
	if apiKey == "" {
		log.Println("DistractorService: DO_INFERENCE_API_KEY not set, option generation disabled")
		return &DistractorService{}
	}

	client := inference.NewClient(inference.Config{
		APIKey: apiKey,
		Model:  os.Getenv("DO_INFERENCE_MODEL"),
	})

	return &DistractorService{client: client}
}

// Enabled reports whether AI option generation is available
func (s *DistractorService) Enabled() bool {
	return s.client != nil
}

const distractorSystemPrompt = `You are an exam question expert. Given a multiple choice question, produce exactly 4 answer options: one plausible correct answer and three plausible distractors. Options must be short, distinct, and in a sensible order.`

type distractorResult struct {
	Options []string `json:"options"`
}

// GenerateOptions produces exactly four answer options for an MCQ question.
// Returns an error when the service is disabled, the API fails, or the
// response does not contain a usable option set.
func (s *DistractorService) GenerateOptions(ctx context.Context, questionText string) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("distractor generation disabled: no API key configured")
	}

	userPrompt := fmt.Sprintf(`Question: %s

Respond with JSON in this shape: {"options": ["...", "...", "...", "..."]}`, questionText)

	raw, err := s.client.JSONCompletion(ctx, distractorSystemPrompt, userPrompt,
		inference.WithTemperature(0.5),
		inference.WithMaxTokens(512),
	)
	if err != nil {
		return nil, fmt.Errorf("option generation request failed: %w", err)
	}

	var result distractorResult
	if err := utils.ExtractJSONTo(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to parse option generation response: %w", err)
	}

	if !analysis.ValidateMCQOptions(result.Options) {
		return nil, fmt.Errorf("option generation returned %d options, need 4 distinct non-empty", len(result.Options))
	}

	return result.Options, nil
}
