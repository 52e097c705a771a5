package evidence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"sentra/internal/config"
	"sentra/internal/models"
	"sentra/internal/services/risk"
)

const analysisPrompt = `You are a financial crime analyst. Given an entity and a digest of its
transaction activity, produce a JSON object with these fields:
  summary              string, two sentences at most
  risk_indicators      array of {description string, severity number in [0,1]}
  anomalies            array of strings
  transaction_patterns array of strings
Report only what the data supports. Respond with the JSON object only.`

type aiAnalyzer struct {
	client *resty.Client
	model  string
}

func newAIAnalyzer(cfg config.SourceConfig, model string) *aiAnalyzer {
	return &aiAnalyzer{
		client: newHTTPClient(cfg),
		model:  model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze asks the chat completion endpoint for a structured assessment
// of the entity's activity.
func (a *aiAnalyzer) Analyze(ctx context.Context, entity *models.Entity, activity string) (*risk.AIAnalysis, error) {
	req := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: analysisPrompt},
			{Role: "user", Content: fmt.Sprintf(
				"Entity: %s\nType: %s\nDescription: %s\n\nActivity digest:\n%s",
				entity.Name, entity.Type, entity.Description, activity)},
		},
	}
	req.ResponseFormat.Type = "json_object"

	var body chatResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&body).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: ai returned %d", ErrUnexpectedStatus, resp.StatusCode())
	}
	if len(body.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	var doc risk.AIAnalysis
	if err := json.Unmarshal([]byte(body.Choices[0].Message.Content), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse ai analysis: %w", err)
	}
	return &doc, nil
}
