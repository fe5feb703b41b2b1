package sqlite_test

import (
	"context"
	"testing"

	"github.com/lpforge/lpextract"
	"github.com/lpforge/lpextract/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(url string) *lpextract.ExtractionRecord {
	return &lpextract.ExtractionRecord{
		URL:        url,
		Text:       "Extracted text for " + url,
		Model:      "gemini-2.5-flash-lite",
		Confidence: 0.74,
		Fields: lpextract.Fields{
			"product_name": "Widget",
			"key_features": []string{"fast", "light"},
		},
	}
}

func TestExtractionService_CreateExtraction(t *testing.T) {
	t.Parallel()

	s := sqlite.NewExtractionService(MustOpenDB(t))
	ctx := context.Background()

	rec := record("https://example.com/widget")
	require.NoError(t, s.CreateExtraction(ctx, rec))

	assert.NotEmpty(t, rec.ID)
	assert.NotEmpty(t, rec.ContentHash)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestExtractionService_CreateExtraction_Invalid(t *testing.T) {
	t.Parallel()

	s := sqlite.NewExtractionService(MustOpenDB(t))

	err := s.CreateExtraction(context.Background(), &lpextract.ExtractionRecord{})
	require.Error(t, err)
	assert.Equal(t, lpextract.EINVALID, lpextract.ErrorCode(err))
}

func TestExtractionService_FindExtractionByURL(t *testing.T) {
	t.Parallel()

	s := sqlite.NewExtractionService(MustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreateExtraction(ctx, record("https://example.com/widget")))

	got, err := s.FindExtractionByURL(ctx, "https://example.com/widget")
	require.NoError(t, err)
	assert.Equal(t, 0.74, got.Confidence)
	assert.Equal(t, "Widget", got.Fields.String("product_name"))
	assert.Equal(t, "fast, light", got.Fields.String("key_features"))
}

func TestExtractionService_FindExtractionByURL_NotFound(t *testing.T) {
	t.Parallel()

	s := sqlite.NewExtractionService(MustOpenDB(t))

	_, err := s.FindExtractionByURL(context.Background(), "https://example.com/absent")
	require.Error(t, err)
	assert.Equal(t, lpextract.ENOTFOUND, lpextract.ErrorCode(err))
}

func TestExtractionService_FindExtractions(t *testing.T) {
	t.Parallel()

	s := sqlite.NewExtractionService(MustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreateExtraction(ctx, record("https://example.com/a")))
	require.NoError(t, s.CreateExtraction(ctx, record("https://example.com/b")))
	require.NoError(t, s.CreateExtraction(ctx, record("https://example.com/c")))

	t.Run("all records", func(t *testing.T) {
		recs, err := s.FindExtractions(ctx, lpextract.ExtractionFilter{})
		require.NoError(t, err)
		assert.Len(t, recs, 3)
	})

	t.Run("filter by URL", func(t *testing.T) {
		url := "https://example.com/b"
		recs, err := s.FindExtractions(ctx, lpextract.ExtractionFilter{URL: &url})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, url, recs[0].URL)
	})

	t.Run("pagination", func(t *testing.T) {
		recs, err := s.FindExtractions(ctx, lpextract.ExtractionFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})
}

func TestExtractionService_DeleteExtraction(t *testing.T) {
	t.Parallel()

	s := sqlite.NewExtractionService(MustOpenDB(t))
	ctx := context.Background()

	rec := record("https://example.com/widget")
	require.NoError(t, s.CreateExtraction(ctx, rec))
	require.NoError(t, s.DeleteExtraction(ctx, rec.ID))

	_, err := s.FindExtractionByURL(ctx, rec.URL)
	assert.Equal(t, lpextract.ENOTFOUND, lpextract.ErrorCode(err))

	err = s.DeleteExtraction(ctx, rec.ID)
	assert.Equal(t, lpextract.ENOTFOUND, lpextract.ErrorCode(err))
}
