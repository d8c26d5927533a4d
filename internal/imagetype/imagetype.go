// Package imagetype classifies image payloads into the closed set of
// kinds the resolver pipeline understands.
//
// Classification is a pure function of the declared content type and the
// href string. It never inspects payload bytes and never performs I/O.
package imagetype

import "strings"

// Kind identifies one of the recognized image kinds.
type Kind int

const (
	KindJPEG Kind = iota
	KindPNG
	KindGIF
	KindWEBP
	KindSVG
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindGIF:
		return "gif"
	case KindWEBP:
		return "webp"
	case KindSVG:
		return "svg"
	default:
		return "unknown"
	}
}

// Detect maps a declared content type and an href to an image kind.
//
// An exact match of contentType against one of the five recognized MIME
// values always wins. Otherwise the substring after the last '.' in href
// is matched case-sensitively against the recognized extensions, with
// "jpg" and "jpeg" both mapping to KindJPEG. The empty content type never
// matches. Detect reports false when neither input identifies a kind.
func Detect(contentType, href string) (Kind, bool) {
	switch contentType {
	case "image/png":
		return KindPNG, true
	case "image/jpeg":
		return KindJPEG, true
	case "image/webp":
		return KindWEBP, true
	case "image/gif":
		return KindGIF, true
	case "image/svg+xml":
		return KindSVG, true
	}

	idx := strings.LastIndexByte(href, '.')
	if idx < 0 {
		return 0, false
	}

	switch href[idx+1:] {
	case "png":
		return KindPNG, true
	case "jpg", "jpeg":
		return KindJPEG, true
	case "webp":
		return KindWEBP, true
	case "gif":
		return KindGIF, true
	case "svg":
		return KindSVG, true
	}

	return 0, false
}
