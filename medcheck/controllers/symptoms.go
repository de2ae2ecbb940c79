package controllers

import (
	"context"
	"fmt"
	"strings"

	"medcheck/medcheck/errs"
	"medcheck/medcheck/services/agent"
	"medcheck/medcheck/sources/psql/models"
)

// HistoryStore is the slice of the data store the symptom controller needs.
type HistoryStore interface {
	SaveEntry(ctx context.Context, email, symptoms, response string) (*models.ChatHistory, error)
	ListByEmail(ctx context.Context, email string) ([]models.ChatHistory, error)
}

type SymptomController struct {
	history HistoryStore
	agent   agent.Agent
}

func NewSymptomController(history HistoryStore, a agent.Agent) *SymptomController {
	return &SymptomController{history: history, agent: a}
}

// Check delegates the symptom description to the agent and logs the
// exchange. An agent failure writes nothing: history only holds answered
// queries.
func (c *SymptomController) Check(ctx context.Context, userEmail, symptoms string) (string, error) {
	if strings.TrimSpace(symptoms) == "" {
		return "", fmt.Errorf("%w: symptoms description is empty", errs.ErrValidation)
	}
	response, err := c.agent.Answer(ctx, symptoms)
	if err != nil {
		return "", err
	}
	if _, err := c.history.SaveEntry(ctx, userEmail, symptoms, response); err != nil {
		return "", err
	}
	return response, nil
}

// CheckStream is the websocket variant: chunks are forwarded as they
// arrive and the history row is written once the stream completes. A
// failed stream writes nothing, like Check.
func (c *SymptomController) CheckStream(ctx context.Context, userEmail, symptoms string) (chan string, chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	if strings.TrimSpace(symptoms) == "" {
		errCh <- fmt.Errorf("%w: symptoms description is empty", errs.ErrValidation)
		close(out)
		close(errCh)
		return out, errCh
	}

	streamer, ok := c.agent.(agent.Streamer)
	if !ok {
		// Fall back to the one-shot path, delivered as a single chunk.
		go func() {
			defer close(out)
			defer close(errCh)
			response, err := c.Check(ctx, userEmail, symptoms)
			if err != nil {
				errCh <- err
				return
			}
			select {
			case out <- response:
			case <-ctx.Done():
			}
		}()
		return out, errCh
	}

	go func() {
		defer close(out)
		defer close(errCh)
		ch, err := streamer.AnswerStream(ctx, symptoms)
		if err != nil {
			errCh <- err
			return
		}
		var full strings.Builder
		for chunk := range ch {
			full.WriteString(chunk)
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
		if full.Len() == 0 {
			errCh <- fmt.Errorf("%w: empty response", errs.ErrAgent)
			return
		}
		if _, err := c.history.SaveEntry(ctx, userEmail, symptoms, full.String()); err != nil {
			errCh <- err
		}
	}()
	return out, errCh
}

// History lists the user's past queries, most recent first.
func (c *SymptomController) History(ctx context.Context, userEmail string) ([]models.ChatHistory, error) {
	return c.history.ListByEmail(ctx, userEmail)
}
