package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"medcheck/medcheck/errs"
	httputils "medcheck/medcheck/utils/http"
	"medcheck/medcheck/utils/logging"

	"go.uber.org/zap"
)

// OllamaAgent talks to a local Ollama server.
type OllamaAgent struct {
	baseURL string
	model   string
}

func NewOllamaAgent(baseURL, model string) *OllamaAgent {
	if baseURL == "" {
		baseURL = "http://localhost:11434/api"
	}
	return &OllamaAgent{baseURL: baseURL, model: model}
}

type ollamaResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

func (c *OllamaAgent) Answer(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "ollama_agent_answer")()
	req := ChatRequest{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   false,
	}
	var resp ollamaResponse
	if err := httputils.PostJSON(c.baseURL+"/chat", req, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrAgent, err)
	}
	return resp.Message.Content, nil
}

func (c *OllamaAgent) AnswerStream(ctx context.Context, prompt string) (<-chan string, error) {
	defer logging.LogDuration(ctx, "ollama_agent_answer_stream")()
	req := ChatRequest{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   true,
	}
	body, err := httputils.PostStream(c.baseURL+"/chat", req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrAgent, err)
	}

	ch := make(chan string)

	go func() {
		defer func() {
			close(ch)
			body.Close()
		}()

		decoder := json.NewDecoder(body)

		for {
			select {
			case <-ctx.Done():
				logging.AppLogger.Info("ollama AnswerStream context cancelled")
				return
			default:
			}

			var chunk ollamaResponse
			if err := decoder.Decode(&chunk); err != nil {
				if err == io.EOF {
					return
				}
				logging.ErrorLogger.Error("ollama stream decode error", zap.Error(err))
				return
			}
			if chunk.Done {
				return
			}
			select {
			case ch <- chunk.Message.Content:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
