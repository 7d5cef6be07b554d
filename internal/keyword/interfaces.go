package keyword

import "context"

// MaxQueryLength is the longest query the media provider accepts, in characters.
const MaxQueryLength = 100

// Extractor turns free scene text into a short search string. The boolean is false when
// no usable keywords could be produced; callers fall back to Fallback in that case.
type Extractor interface {
	Extract(ctx context.Context, sceneText string) (string, bool)
}
