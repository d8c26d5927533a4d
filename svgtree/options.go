package svgtree

import "github.com/spf13/afero"

// StringResolverFn resolves an href attribute value to an image.
// A nil result means the href could not be resolved and the image is
// treated as absent.
type StringResolverFn func(href string, opts *Options) *ImageKind

// Options carries document-build configuration. It is threaded through
// parsing and handed, unchanged, to the configured string resolver and to
// recursive parses of nested SVG images. Resolvers must treat it as
// read-only.
type Options struct {
	// ResolveString is the designated resolver slot for href attributes.
	// When nil, the built-in resolver (local paths and data URIs) is used.
	ResolveString StringResolverFn

	// Fs is the filesystem used to read local hrefs. When nil, DefaultFs
	// is used.
	Fs afero.Fs

	// ResourcesDir is the base directory for relative local hrefs.
	ResourcesDir string

	// depth counts nested image parses; see maxImageDepth.
	depth int
}

func (o *Options) fs() afero.Fs {
	if o.Fs != nil {
		return o.Fs
	}

	return DefaultFs
}

func (o *Options) resolver() StringResolverFn {
	if o.ResolveString != nil {
		return o.ResolveString
	}

	return DefaultStringResolver()
}
