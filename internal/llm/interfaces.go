package llm

import (
	"context"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Messages []Message
	Model    string
}

// AIProvider is a single-shot text completion backend.
type AIProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (Message, error)
}
