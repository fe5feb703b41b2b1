package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	lphttp "github.com/lpforge/lpextract/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const urlsetXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>https://shop.example/widget</loc></url>
	<url><loc>https://shop.example/gadget</loc></url>
	<url><loc>https://shop.example/widget</loc></url>
</urlset>`

func TestSitemapService_Discover_FromRobots(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "User-agent: *\nSitemap: %s/pages.xml\n", srv.URL)
	})
	mux.HandleFunc("/pages.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(urlsetXML))
	})

	s := lphttp.NewSitemapService(srv.Client())

	urls, err := s.Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	// Duplicates collapse, order preserved.
	assert.Equal(t, []string{"https://shop.example/widget", "https://shop.example/gadget"}, urls)
}

func TestSitemapService_Discover_FallbackToSitemapXML(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(urlsetXML))
	})

	s := lphttp.NewSitemapService(srv.Client())

	urls, err := s.Discover(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestSitemapService_Discover_SitemapIndex(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Sitemap: %s/index.xml\n", srv.URL)
	})
	mux.HandleFunc("/index.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<sitemap><loc>%s/pages.xml</loc></sitemap>
	<sitemap><loc>%s/index.xml</loc></sitemap>
</sitemapindex>`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/pages.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(urlsetXML))
	})

	s := lphttp.NewSitemapService(srv.Client())

	// The index references itself; the seen set must break the cycle.
	urls, err := s.Discover(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestSitemapService_Discover_NoSitemap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := lphttp.NewSitemapService(srv.Client())

	urls, err := s.Discover(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.NotNil(t, urls)
}
