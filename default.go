package imghref

import "github.com/arloliu/imghref/svgtree"

// DefaultResolver delegates to the host's built-in resolution for local
// file paths and data URIs. It claims every href, so it is typically
// placed last in a chain as the terminal fallback.
type DefaultResolver struct{}

// Claims always reports true.
func (DefaultResolver) Claims(string) bool {
	return true
}

// Resolve delegates to the built-in string resolver.
func (DefaultResolver) Resolve(href string, opts *svgtree.Options) *svgtree.ImageKind {
	return svgtree.DefaultStringResolver()(href, opts)
}
