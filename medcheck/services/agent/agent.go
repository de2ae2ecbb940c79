// Package agent is the boundary to the external LLM collaborator. The rest
// of the application only sees the Agent capability; any failure behind it
// (network, quota, malformed output) surfaces as errs.ErrAgent.
package agent

import (
	"context"
	"fmt"
	"strings"

	"medcheck/medcheck/errs"
	"medcheck/medcheck/sources/psql/models"
)

// Agent answers a free-text prompt with free text.
type Agent interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// Streamer is implemented by agents that can deliver the answer in chunks.
type Streamer interface {
	AnswerStream(ctx context.Context, prompt string) (<-chan string, error)
}

type ChatRequest struct {
	Model    string      `json:"model"`
	Messages []Message   `json:"messages"`
	Stream   bool        `json:"stream"`
	Options  interface{} `json:"options,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const systemInstruction = "You are a healthcare symptom checker. Using the condition reference data " +
	"provided, suggest probable conditions for the described symptoms and the usual self-care or " +
	"treatment recommendations. If the reference data does not cover the symptoms, say so. " +
	"Always advise consulting a medical professional; never present the answer as a diagnosis."

// ConditionStore is the read-only view of the conditions table the agent is
// configured with.
type ConditionStore interface {
	ListConditions(ctx context.Context, limit int) ([]models.Condition, error)
}

// ConditionAgent decorates an Agent with the conditions reference data: each
// prompt is prefixed with a context block of up to maxRows scraped condition
// records before delegation.
type ConditionAgent struct {
	inner   Agent
	store   ConditionStore
	maxRows int
}

func NewConditionAgent(inner Agent, store ConditionStore, maxRows int) *ConditionAgent {
	if maxRows <= 0 {
		maxRows = 25
	}
	return &ConditionAgent{inner: inner, store: store, maxRows: maxRows}
}

func (a *ConditionAgent) Answer(ctx context.Context, prompt string) (string, error) {
	full, err := a.buildPrompt(ctx, prompt)
	if err != nil {
		return "", err
	}
	return a.inner.Answer(ctx, full)
}

func (a *ConditionAgent) AnswerStream(ctx context.Context, prompt string) (<-chan string, error) {
	full, err := a.buildPrompt(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if streamer, ok := a.inner.(Streamer); ok {
		return streamer.AnswerStream(ctx, full)
	}
	// Non-streaming transport: answer once and deliver as a single chunk.
	answer, err := a.inner.Answer(ctx, full)
	if err != nil {
		return nil, err
	}
	ch := make(chan string, 1)
	ch <- answer
	close(ch)
	return ch, nil
}

func (a *ConditionAgent) buildPrompt(ctx context.Context, prompt string) (string, error) {
	conditions, err := a.store.ListConditions(ctx, a.maxRows)
	if err != nil {
		return "", fmt.Errorf("%w: loading condition context: %v", errs.ErrAgent, err)
	}

	var sb strings.Builder
	sb.WriteString(systemInstruction)
	sb.WriteString("\n\nCondition reference data:\n")
	if len(conditions) == 0 {
		sb.WriteString("(no reference data available)\n")
	}
	for _, c := range conditions {
		sb.WriteString("- ")
		sb.WriteString(c.Name)
		if c.Symptoms != "" {
			sb.WriteString("\n  symptoms: ")
			sb.WriteString(c.Symptoms)
		}
		if c.Recommendations != "" {
			sb.WriteString("\n  recommendations: ")
			sb.WriteString(c.Recommendations)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nPatient describes: ")
	sb.WriteString(prompt)
	return sb.String(), nil
}
