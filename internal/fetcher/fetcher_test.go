package fetcher_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/fetcher"
)

func testFetchConfig() *config.FetchConfig {
	return &config.FetchConfig{
		Timeout:       10 * time.Second,
		MaxFileSizeMB: 20,
	}
}

// localFetchConfig permits loopback targets so tests can hit httptest servers.
func localFetchConfig() *config.FetchConfig {
	cfg := testFetchConfig()
	cfg.AllowPrivateHosts = true
	return cfg
}

func TestFetch_RejectsNonPublicHosts(t *testing.T) {
	f := fetcher.New(testFetchConfig())

	// None of these may produce any network activity.
	targets := []string{
		"http://127.0.0.1/internal-admin",
		"http://169.254.169.254/latest/meta-data",
		"http://10.0.0.5/",
		"http://192.168.1.10/router",
		"http://172.16.0.1/",
		"http://100.64.0.1/",
		"http://0.0.0.0/",
		"http://localhost/secrets",
		"http://[::1]/",
	}
	for _, target := range targets {
		doc, err := f.Fetch(context.Background(), target)
		assert.Nil(t, doc, target)
		assert.ErrorIs(t, err, domain.ErrForbiddenHost, target)
	}
}

func TestFetch_AllowlistCannotOverridePrivateRejection(t *testing.T) {
	cfg := testFetchConfig()
	cfg.AllowedDomains = []string{"127.0.0.1", "169.254.169.254"}
	f := fetcher.New(cfg)

	for _, target := range []string{"http://127.0.0.1/x", "http://169.254.169.254/latest/meta-data"} {
		_, err := f.Fetch(context.Background(), target)
		assert.ErrorIs(t, err, domain.ErrForbiddenHost, target)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	f := fetcher.New(testFetchConfig())

	targets := []string{
		"",
		"ftp://files.example.com/bill.pdf",
		"file:///etc/passwd",
		"http://",
		"http://%zz",
		"definitely not a url",
	}
	for _, target := range targets {
		doc, err := f.Fetch(context.Background(), target)
		assert.Nil(t, doc, target)
		assert.ErrorIs(t, err, domain.ErrInvalidURL, target)
	}
}

func TestFetch_Success(t *testing.T) {
	payload := []byte("%PDF-1.4\nbill body")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	f := fetcher.New(localFetchConfig())
	doc, err := f.Fetch(context.Background(), srv.URL+"/bills/visit-1042.pdf")

	require.NoError(t, err)
	assert.Equal(t, payload, doc.Bytes)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Contains(t, doc.FinalURL, "/bills/visit-1042.pdf")
}

func TestFetch_Non2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := fetcher.New(localFetchConfig())
	doc, err := f.Fetch(context.Background(), srv.URL)

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
}

func TestFetch_TooLarge(t *testing.T) {
	big := bytes.Repeat([]byte("x"), 1<<20+10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(big)
	}))
	defer srv.Close()

	cfg := localFetchConfig()
	cfg.MaxFileSizeMB = 1
	f := fetcher.New(cfg)

	doc, err := f.Fetch(context.Background(), srv.URL)

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestFetch_AllowlistEnforced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	cfg := localFetchConfig()
	cfg.AllowedDomains = []string{"bills.example.com"}
	f := fetcher.New(cfg)

	// The test server's 127.0.0.1 host is not on the allowlist.
	doc, err := f.Fetch(context.Background(), srv.URL)

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrForbiddenHost)
}

func TestFetch_AllowlistExactMatchAllows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	cfg := localFetchConfig()
	cfg.AllowedDomains = []string{"127.0.0.1"}
	f := fetcher.New(cfg)

	doc, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes)
}

func TestFetch_AllowlistDotPrefixRejectsOtherDomains(t *testing.T) {
	cfg := testFetchConfig()
	cfg.AllowedDomains = []string{".trusted.example.com"}
	f := fetcher.New(cfg)

	// Rejected before any DNS or dial happens.
	for _, target := range []string{
		"https://docs.other.com/bill.pdf",
		"https://trusted.example.com.evil.net/bill.pdf",
	} {
		doc, err := f.Fetch(context.Background(), target)
		assert.Nil(t, doc, target)
		assert.ErrorIs(t, err, domain.ErrForbiddenHost, target)
	}
}

func TestFetch_RedirectHopsRevalidated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Try to bounce the fetcher to a host outside the allowlist.
		http.Redirect(w, r, "http://evil.example.com/doc.pdf", http.StatusFound)
	}))
	defer srv.Close()

	cfg := localFetchConfig()
	cfg.AllowedDomains = []string{"127.0.0.1"}
	f := fetcher.New(cfg)

	doc, err := f.Fetch(context.Background(), srv.URL)

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrForbiddenHost)
}

func TestFetch_FollowsAllowedRedirect(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4\nredirected"))
	}))
	defer target.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/final.pdf", http.StatusFound)
	}))
	defer srv.Close()

	f := fetcher.New(localFetchConfig())
	doc, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, doc.FinalURL, "/final.pdf")
	assert.Equal(t, []byte("%PDF-1.4\nredirected"), doc.Bytes)
}
