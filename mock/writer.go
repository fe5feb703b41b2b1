package mock

import (
	"context"

	"github.com/lpforge/lpextract"
)

var _ lpextract.PreprocessedWriter = (*PreprocessedWriter)(nil)

// PreprocessedWriter is a mock implementation of lpextract.PreprocessedWriter.
type PreprocessedWriter struct {
	WriteFn func(url string, text string) (string, error)
}

func (w *PreprocessedWriter) Write(url string, text string) (string, error) {
	return w.WriteFn(url, text)
}

var _ lpextract.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of lpextract.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
