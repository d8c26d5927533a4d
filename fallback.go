package imghref

import "github.com/arloliu/imghref/svgtree"

// FallbackResolver composes two resolvers into an ordered pair. The
// primary is always preferred; the fallback is consulted only when the
// primary declines the href or resolves it to nothing. Pairs nest, so
// chains of arbitrary length are built by repeated pairing (see Chain).
type FallbackResolver struct {
	Primary  Resolver
	Fallback Resolver
}

// NewFallbackResolver creates a FallbackResolver from a primary and a
// fallback resolver.
func NewFallbackResolver(primary, fallback Resolver) *FallbackResolver {
	return &FallbackResolver{Primary: primary, Fallback: fallback}
}

// WithFallback pairs r with a fallback tried when r declines or fails.
func WithFallback(r, fallback Resolver) *FallbackResolver {
	return NewFallbackResolver(r, fallback)
}

// Claims reports whether either member claims the href, checking the
// primary first.
func (r *FallbackResolver) Claims(href string) bool {
	return r.Primary.Claims(href) || r.Fallback.Claims(href)
}

// Resolve tries the primary first and returns its result when it claims
// the href and produces one. Otherwise the fallback is tried, when it
// claims the href. The fallback is never invoked on a primary success.
func (r *FallbackResolver) Resolve(href string, opts *svgtree.Options) *svgtree.ImageKind {
	if r.Primary.Claims(href) {
		if kind := r.Primary.Resolve(href, opts); kind != nil {
			return kind
		}
	}

	if r.Fallback.Claims(href) {
		return r.Fallback.Resolve(href, opts)
	}

	return nil
}

// Chain builds a right-nested fallback chain from the given resolvers:
// Chain(a, b, c) is equivalent to
// NewFallbackResolver(a, NewFallbackResolver(b, c)), so the first
// resolver always has the highest priority.
func Chain(first Resolver, rest ...Resolver) Resolver {
	if len(rest) == 0 {
		return first
	}

	return NewFallbackResolver(first, Chain(rest[0], rest[1:]...))
}
