package lpextract

import "context"

// TokenCounter estimates how many model tokens a piece of text will
// consume. The structured extractor uses it to trim oversized prompts
// before calling the model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
