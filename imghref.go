// Package imghref provides pluggable resolution of <image href="...">
// references in SVG documents.
//
// A Resolver decides whether an href belongs to it (Claims) and turns it
// into an image payload (Resolve). Resolvers compose into ordered
// fallback chains and install into the svgtree document-build options:
//
//	resolver := imghref.Chain(
//	    imghref.NewHTTPResolver(),
//	    imghref.DefaultResolver{},
//	)
//
//	opts := &svgtree.Options{}
//	imghref.Install(resolver, opts)
//
//	tree, err := svgtree.Parse(data, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Resolution failures are values, not errors: a Resolver returns nil for
// any ordinary failure (transport error, non-success status, unrecognized
// type, nested parse failure) and the next chain member or the host's
// default handling takes over.
package imghref

import "github.com/arloliu/imghref/svgtree"

// Resolver resolves href attribute values to images.
//
// Implementations MUST be safe for concurrent use by multiple goroutines.
type Resolver interface {
	// Claims reports whether this resolver should be tried for href.
	// It must be fast, side-effect-free, and repeatable.
	Claims(href string) bool

	// Resolve performs whatever I/O is necessary and returns the
	// classified payload, or nil on any failure. Ordinary failures are
	// never surfaced as panics or errors.
	Resolve(href string, opts *svgtree.Options) *svgtree.ImageKind
}

// ResolverFunc adapts a Resolver into the host's string-resolver slot.
// The returned callable short-circuits to nil when the resolver does not
// claim the href.
func ResolverFunc(r Resolver) svgtree.StringResolverFn {
	return func(href string, opts *svgtree.Options) *svgtree.ImageKind {
		if !r.Claims(href) {
			return nil
		}

		return r.Resolve(href, opts)
	}
}

// Install sets the resolver into the document-build options.
func Install(r Resolver, opts *svgtree.Options) {
	opts.ResolveString = ResolverFunc(r)
}
