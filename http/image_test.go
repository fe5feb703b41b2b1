package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lpforge/lpextract"
	lphttp "github.com/lpforge/lpextract/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageFetcher_FetchImage(t *testing.T) {
	t.Parallel()

	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	f := lphttp.NewImageFetcher(srv.Client())

	data, err := f.FetchImage(context.Background(), srv.URL+"/hero.jpg")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestImageFetcher_FetchImage_NonImageRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	f := lphttp.NewImageFetcher(srv.Client())

	_, err := f.FetchImage(context.Background(), srv.URL+"/hero.jpg")
	require.Error(t, err)
	assert.Equal(t, lpextract.EINVALID, lpextract.ErrorCode(err))
}

func TestImageFetcher_FetchImage_HeadRejectedStillFetches(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 0x50, 0x4E, 0x47})
	}))
	defer srv.Close()

	f := lphttp.NewImageFetcher(srv.Client())

	data, err := f.FetchImage(context.Background(), srv.URL+"/hero.png")
	require.NoError(t, err)
	assert.Len(t, data, 4)
}

func TestImageFetcher_FetchImage_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := lphttp.NewImageFetcher(srv.Client())

	_, err := f.FetchImage(context.Background(), srv.URL+"/missing.jpg")
	require.Error(t, err)
	assert.Equal(t, lpextract.EUNAVAILABLE, lpextract.ErrorCode(err))
}
