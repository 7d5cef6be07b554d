package keyword

import (
	"context"
	"fmt"
	"strings"

	"scenemedia/be/internal/llm"
	"scenemedia/be/internal/logging"
)

const (
	EXTRACTION_PROMPT = `Read the following scene description and return 4 or 5 descriptive keywords that would find matching stock photos and videos.
Write them in the same language as the scene, separated by single spaces, %d characters at most in total.
Do not number them, do not use commas and do not add any introduction or explanation.

Scene:
%s`
)

// Service extracts keywords with a single language model call. It never retries: a failed
// extraction is handled by the fallback query.
type Service struct {
	aiProvider llm.AIProvider
	logger     logging.Logger
}

var _ Extractor = (*Service)(nil)

// NewService creates a keyword extractor. A nil provider means extraction is not configured
// and every call reports absence.
func NewService(aiProvider llm.AIProvider, logger logging.Logger) *Service {
	return &Service{aiProvider: aiProvider, logger: logging.OrDiscard(logger)}
}

func (s *Service) Extract(ctx context.Context, sceneText string) (string, bool) {
	if s.aiProvider == nil {
		s.logger.Debug("keyword extraction not configured")
		return "", false
	}

	res, err := s.aiProvider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{{
			Role:    "user",
			Content: fmt.Sprintf(EXTRACTION_PROMPT, MaxQueryLength, sceneText),
		}},
	})
	if err != nil {
		s.logger.WithError(err).Warn("keyword extraction failed, using fallback query")
		return "", false
	}

	keywords := Clean(res.Content)
	if keywords == "" {
		s.logger.Warn("keyword extraction returned no usable text, using fallback query")
		return "", false
	}
	return keywords, true
}

// Clean collapses newlines, commas and repeated whitespace into single spaces and bounds
// the result to MaxQueryLength without cutting a word.
func Clean(raw string) string {
	replaced := strings.NewReplacer("\r", " ", "\n", " ", ",", " ").Replace(raw)
	collapsed := strings.Join(strings.Fields(replaced), " ")
	return TruncateAtWord(collapsed, MaxQueryLength)
}

// TruncateAtWord returns the longest prefix of s made of whole space separated words that
// fits in limit characters. A single word longer than limit yields "".
func TruncateAtWord(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	// The word ends exactly at the limit.
	if runes[limit] == ' ' {
		return strings.TrimRight(string(runes[:limit]), " ")
	}
	head := string(runes[:limit])
	cut := strings.LastIndex(head, " ")
	if cut < 0 {
		return ""
	}
	return strings.TrimRight(head[:cut], " ")
}

// Fallback is the last resort query: the first MaxQueryLength characters of the scene.
func Fallback(sceneText string) string {
	runes := []rune(sceneText)
	if len(runes) <= MaxQueryLength {
		return sceneText
	}
	return string(runes[:MaxQueryLength])
}

// Derive runs the extractor and applies the fallback when it reports absence.
func Derive(ctx context.Context, extractor Extractor, sceneText string) (query string, extracted bool) {
	if extractor != nil {
		if keywords, ok := extractor.Extract(ctx, sceneText); ok {
			return keywords, true
		}
	}
	return Fallback(sceneText), false
}
