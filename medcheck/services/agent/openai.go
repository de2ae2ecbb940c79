package agent

import (
	"context"
	"fmt"

	"medcheck/medcheck/errs"
	httputils "medcheck/medcheck/utils/http"
	"medcheck/medcheck/utils/logging"
)

// OpenAIAgent talks to any OpenAI-compatible chat-completions endpoint
// (Groq, Gemini's compatibility layer, a hosted proxy).
type OpenAIAgent struct {
	baseURL string
	apiKey  string
	model   string
}

func NewOpenAIAgent(baseURL, apiKey, model string) *OpenAIAgent {
	return &OpenAIAgent{baseURL: baseURL, apiKey: apiKey, model: model}
}

func (c *OpenAIAgent) Answer(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "openai_agent_answer")()

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)

	req := ChatRequest{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   false,
	}
	var resp struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		Created int64  `json:"created"`
		Model   string `json:"model"`
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}

	if err := httputils.PostJSONWithAuth(url, c.apiKey, req, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrAgent, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", errs.ErrAgent)
	}
	return resp.Choices[0].Message.Content, nil
}
