package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestToOpenAIMessages(t *testing.T) {
	got := toOpenAIMessages([]Message{
		{Content: "describe"},
		{Role: openai.ChatMessageRoleSystem, Content: "rules"},
	})

	assert.Len(t, got, 2)
	assert.Equal(t, openai.ChatMessageRoleUser, got[0].Role)
	assert.Equal(t, "describe", got[0].Content)
	assert.Equal(t, openai.ChatMessageRoleSystem, got[1].Role)
}

func TestJoinText(t *testing.T) {
	parts := []genai.Part{genai.Text("lago "), genai.Blob{MIMEType: "image/png"}, genai.Text("amanecer")}
	assert.Equal(t, "lago amanecer", joinText(parts))
}

func TestNewProvidersDefaultModel(t *testing.T) {
	assert.Equal(t, openai.GPT4oMini, NewOpenAIProvider(nil, "").model)
	assert.Equal(t, defaultGeminiModel, NewGeminiAIProvider(nil, "").model)
	assert.Equal(t, "gemini-2.0-flash", NewGeminiAIProvider(nil, "gemini-2.0-flash").model)
}
