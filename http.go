package imghref

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/arloliu/imghref/svgtree"
)

// HTTPResolver fetches http:// and https:// hrefs with a synchronous
// HTTP GET and classifies the response.
//
// The zero value is not usable; construct with NewHTTPResolver. The
// resolver is safe for concurrent use; the underlying client's
// connection pool is shared across calls.
type HTTPResolver struct {
	client    *http.Client
	maxSize   int64
	ctx       context.Context
	userAgent string
}

// NewHTTPResolver creates an HTTPResolver. Without options it uses a
// dedicated client with a 30 second timeout and a 16 MiB body cap.
func NewHTTPResolver(opts ...Option) *HTTPResolver {
	cfg := newHTTPConfig(opts...)

	return &HTTPResolver{
		client:    cfg.client,
		maxSize:   cfg.maxSize,
		ctx:       cfg.ctx,
		userAgent: cfg.userAgent,
	}
}

// Client returns the underlying HTTP client.
func (r *HTTPResolver) Client() *http.Client {
	return r.client
}

// Claims reports whether href starts with http:// or https://. The
// check is a literal, case-sensitive prefix match; no scheme
// normalization is performed.
func (r *HTTPResolver) Claims(href string) bool {
	return claimsHTTP(href)
}

// Resolve fetches href and returns the classified payload, or nil on
// transport failure, non-200 status, unrecognized type, body overflow,
// or nested SVG parse failure.
func (r *HTTPResolver) Resolve(href string, opts *svgtree.Options) *svgtree.ImageKind {
	format, body, ok := r.fetch(href)
	if !ok {
		return nil
	}

	return svgtree.MakeImage(format, body, opts)
}

// fetch performs the GET and classification, leaving materialization to
// the caller. Shared with AsyncHTTPResolver workers.
func (r *HTTPResolver) fetch(href string) (svgtree.ImageFormat, []byte, bool) {
	req, err := http.NewRequestWithContext(r.ctx, http.MethodGet, href, nil)
	if err != nil {
		return 0, nil, false
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, nil, false
	}

	// The header value is matched verbatim; "image/png; charset=..."
	// does not match and falls through to the extension check.
	format, ok := svgtree.ClassifyHref(resp.Header.Get("Content-Type"), href)
	if !ok {
		return 0, nil, false
	}

	// Read with limit + 1 to detect overflow.
	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxSize+1))
	if err != nil {
		return 0, nil, false
	}
	if int64(len(body)) > r.maxSize {
		return 0, nil, false
	}

	return format, body, true
}

func claimsHTTP(href string) bool {
	return strings.HasPrefix(href, "https://") || strings.HasPrefix(href, "http://")
}
