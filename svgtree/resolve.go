package svgtree

import (
	"encoding/base64"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultStringResolver returns the built-in href resolver. It handles
// data: URIs and local file paths read through the Options filesystem.
// Remote schemes are not handled; install a resolver from the imghref
// package for those.
func DefaultStringResolver() StringResolverFn {
	return func(href string, opts *Options) *ImageKind {
		if opts == nil {
			opts = &Options{}
		}

		if strings.HasPrefix(href, "data:") {
			return resolveDataURI(href, opts)
		}

		return resolveFilePath(href, opts)
	}
}

// resolveDataURI decodes data:[<mediatype>][;base64],<payload> hrefs.
// The mediatype decides the image format; a missing or unrecognized
// mediatype resolves to nothing.
func resolveDataURI(href string, opts *Options) *ImageKind {
	meta, payload, found := strings.Cut(strings.TrimPrefix(href, "data:"), ",")
	if !found {
		return nil
	}

	mediatype, params, _ := strings.Cut(meta, ";")

	format, ok := ClassifyHref(mediatype, "")
	if !ok {
		return nil
	}

	var data []byte
	var err error
	if strings.Contains(";"+params, ";base64") {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var s string
		s, err = url.PathUnescape(payload)
		data = []byte(s)
	}
	if err != nil {
		return nil
	}

	return MakeImage(format, data, opts)
}

// resolveFilePath reads a local href through the Options filesystem.
// Relative paths are joined with ResourcesDir when it is set.
func resolveFilePath(href string, opts *Options) *ImageKind {
	format, ok := ClassifyHref("", href)
	if !ok {
		return nil
	}

	path := href
	if !filepath.IsAbs(path) && opts.ResourcesDir != "" {
		path = filepath.Join(opts.ResourcesDir, path)
	}

	data, err := afero.ReadFile(opts.fs(), path)
	if err != nil {
		return nil
	}

	return MakeImage(format, data, opts)
}
