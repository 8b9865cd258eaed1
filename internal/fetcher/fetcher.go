package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"billscan/internal/config"
	"billscan/internal/domain"
)

const maxRedirects = 5

// Fetcher downloads a remote document with SSRF defenses: the target host is
// validated against loopback/link-local/private ranges at connection time,
// after DNS resolution, so neither redirects nor DNS rebinding can steer a
// request into the internal network.
type Fetcher struct {
	cfg    *config.FetchConfig
	client *http.Client
}

// New creates a Fetcher from fetch config.
func New(cfg *config.FetchConfig) *Fetcher {
	f := &Fetcher{cfg: cfg}

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	if !cfg.AllowPrivateHosts {
		// Control runs once per connection attempt with the resolved
		// address, which is the only place a rebinding DNS answer can be
		// caught.
		dialer.Control = func(network, address string, _ syscall.RawConn) error {
			return checkDialAddress(address)
		}
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}

	f.client = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			// Each hop gets the same host validation as the original URL.
			return f.validateURL(req.URL)
		},
	}

	return f
}

// Fetch validates rawURL and downloads the document it points at.
// Returns ErrInvalidURL for malformed input, ErrForbiddenHost when the host
// fails validation, ErrFileTooLarge past the size ceiling, and
// ErrDownloadFailed for network/status failures. No retries: transient
// failures surface to the caller.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.FetchedDocument, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", domain.ErrInvalidURL)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", domain.ErrInvalidURL)
	}

	if err := f.validateURL(u); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// A dial-time host rejection surfaces wrapped in a *url.Error.
		if errors.Is(err, domain.ErrForbiddenHost) {
			return nil, domain.ErrForbiddenHost
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d from %s", domain.ErrDownloadFailed, resp.StatusCode, resp.Request.URL.Hostname())
	}

	maxBytes := f.cfg.MaxBytes()
	if resp.ContentLength > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrDownloadFailed, err)
	}
	if int64(len(body)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	log.Printf("fetcher.Fetch: downloaded %d bytes from %s", len(body), resp.Request.URL.Hostname())

	return &domain.FetchedDocument{
		Bytes:       body,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

// validateURL applies the pre-dial host checks: allowlist membership and
// rejection of literal non-public IPs. Hostname resolution is deliberately
// not done here; the dial-time check covers resolved addresses.
func (f *Fetcher) validateURL(u *url.URL) error {
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))

	// A literal IP is checked immediately, with no network activity.
	// The allowlist never overrides this.
	if ip := net.ParseIP(host); ip != nil {
		if !f.cfg.AllowPrivateHosts && !isPublicIP(ip) {
			return domain.ErrForbiddenHost
		}
		return f.checkAllowlist(host)
	}

	if host == "localhost" && !f.cfg.AllowPrivateHosts {
		return domain.ErrForbiddenHost
	}

	return f.checkAllowlist(host)
}

// checkAllowlist enforces the configured domain allowlist. An empty list
// allows any host (public-IP enforcement still applies). Entries match the
// host exactly, or any subdomain when the entry starts with a dot.
func (f *Fetcher) checkAllowlist(host string) error {
	if len(f.cfg.AllowedDomains) == 0 {
		return nil
	}
	for _, d := range f.cfg.AllowedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if strings.HasPrefix(d, ".") {
			if strings.HasSuffix(host, d) || host == strings.TrimPrefix(d, ".") {
				return nil
			}
			continue
		}
		if host == d {
			return nil
		}
	}
	return domain.ErrForbiddenHost
}

// checkDialAddress validates a resolved ip:port immediately before the
// socket connects.
func checkDialAddress(address string) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return domain.ErrForbiddenHost
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublicIP(ip) {
		return domain.ErrForbiddenHost
	}
	return nil
}

// carrierGradeNAT is 100.64.0.0/10, non-public but outside net.IP.IsPrivate.
var carrierGradeNAT = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

// isPublicIP reports whether ip is a routable public address. Loopback,
// RFC1918/ULA private, link-local (incl. 169.254.169.254 metadata),
// multicast, unspecified, and CGN ranges all fail.
func isPublicIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		return false
	}
	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsMulticast() {
		return false
	}
	if v4 := ip.To4(); v4 != nil && carrierGradeNAT.Contains(v4) {
		return false
	}
	return true
}
