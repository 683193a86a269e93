package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrModelUnauthorized means the hosted model rejected our credentials.
var ErrModelUnauthorized = errors.New("services: model API key rejected")

// LLMChatResponder forwards job questions to a hosted model.
type LLMChatResponder struct {
	// Held so the client is built once, not per request.
	Client llms.Model
	Log    *logging.Logger
}

// NewLLMChatResponder initializes the Gemini client.
func NewLLMChatResponder(ctx context.Context, apiKey, model string, log *logging.Logger) (*LLMChatResponder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("services: GEMINI_API_KEY is empty")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("services: create Gemini client: %w", err)
	}

	return &LLMChatResponder{
		Client: llm,
		Log:    log,
	}, nil
}

const jobChatPrompt = `
You are a helpful job assistant on the HirelyAI job board. Answer the candidate's question about the job below.

### JOB:
Title: %s
Company: %s
Location: %s
Salary: %s
Description: %s

### RULES:
1. Answer only from the job details above. If the answer is not there, say so and suggest contacting the employer.
2. Keep the answer short: at most three sentences, plain text, no markdown.
3. Do not invent benefits, requirements or salary figures.

### QUESTION:
%s
`

// Respond returns the model's reply verbatim.
func (s *LLMChatResponder) Respond(ctx context.Context, message string, job *JobContext) (string, error) {
	if job == nil {
		job = NewJobContext(nil)
	}
	description := job.Description
	if description == "" {
		description = "Not provided"
	}

	prompt := fmt.Sprintf(jobChatPrompt, job.JobTitle, job.Company, job.Location, job.Salary, description, message)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		if isModelAuthError(err) {
			return "", fmt.Errorf("%w: %v", ErrModelUnauthorized, err)
		}
		return "", fmt.Errorf("services: generate reply: %w", err)
	}
	return resp, nil
}

func isModelAuthError(err error) bool {
	switch status.Code(err) {
	case codes.Unauthenticated, codes.PermissionDenied:
		return true
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && (gErr.Code == http.StatusUnauthorized || gErr.Code == http.StatusForbidden) {
		return true
	}
	return strings.Contains(err.Error(), "API key not valid")
}
