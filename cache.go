package imghref

import (
	"net/http"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

// NewMemoryCachedHTTPResolver creates an HTTPResolver whose client
// caches responses in memory, honoring standard HTTP caching headers.
// Caching is delegated entirely to the transport; resolve semantics are
// unchanged.
func NewMemoryCachedHTTPResolver(opts ...Option) *HTTPResolver {
	return newCachedHTTPResolver(httpcache.NewMemoryCacheTransport(), opts)
}

// NewDiskCachedHTTPResolver creates an HTTPResolver whose client caches
// responses on disk under dir, honoring standard HTTP caching headers.
// The directory is created on first write.
func NewDiskCachedHTTPResolver(dir string, opts ...Option) *HTTPResolver {
	return newCachedHTTPResolver(httpcache.NewTransport(diskcache.New(dir)), opts)
}

func newCachedHTTPResolver(transport *httpcache.Transport, opts []Option) *HTTPResolver {
	client := &http.Client{
		Timeout:   defaultTimeout,
		Transport: transport,
	}

	// The caching client goes first so caller options still apply on
	// top of it; a caller-supplied WithHTTPClient replaces the cache.
	return NewHTTPResolver(append([]Option{WithHTTPClient(client)}, opts...)...)
}
