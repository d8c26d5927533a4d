package svgtree

import "github.com/arloliu/imghref/internal/imagetype"

// ImageFormat identifies one of the recognized image formats.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	FormatGIF
	FormatWEBP
	FormatSVG
)

// String returns a short name for the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatGIF:
		return "gif"
	case FormatWEBP:
		return "webp"
	case FormatSVG:
		return "svg"
	default:
		return "unknown"
	}
}

// ImageKind is a resolved image payload. Raster formats wrap the raw
// bytes; the SVG format wraps a parsed sub-document instead. An ImageKind
// is immutable once constructed: callers must not modify the byte slice
// returned by Data.
type ImageKind struct {
	format ImageFormat
	data   []byte
	tree   *Tree
}

// NewRasterImage wraps data as a raster image of the given format.
// It returns nil when format is FormatSVG; SVG images carry a parsed
// tree and are constructed via NewSVGImage.
func NewRasterImage(format ImageFormat, data []byte) *ImageKind {
	if format == FormatSVG {
		return nil
	}

	return &ImageKind{format: format, data: data}
}

// NewSVGImage wraps a parsed sub-document as an SVG image.
func NewSVGImage(tree *Tree) *ImageKind {
	if tree == nil {
		return nil
	}

	return &ImageKind{format: FormatSVG, tree: tree}
}

// Format returns the image format.
func (k *ImageKind) Format() ImageFormat {
	return k.format
}

// Data returns the raw payload for raster formats and nil for SVG.
func (k *ImageKind) Data() []byte {
	return k.data
}

// Tree returns the parsed sub-document for SVG and nil for raster formats.
func (k *ImageKind) Tree() *Tree {
	return k.tree
}

// ClassifyHref maps a declared content type and an href to an image
// format. The content type wins on an exact match against the five
// recognized MIME values; otherwise the extension after the last '.'
// decides, case-sensitively. It reports false when neither identifies a
// format. ClassifyHref is pure and performs no I/O.
func ClassifyHref(contentType, href string) (ImageFormat, bool) {
	kind, ok := imagetype.Detect(contentType, href)
	if !ok {
		return 0, false
	}

	return formatFor(kind), true
}

func formatFor(kind imagetype.Kind) ImageFormat {
	switch kind {
	case imagetype.KindPNG:
		return FormatPNG
	case imagetype.KindJPEG:
		return FormatJPEG
	case imagetype.KindGIF:
		return FormatGIF
	case imagetype.KindWEBP:
		return FormatWEBP
	default:
		return FormatSVG
	}
}

// MakeImage materializes classified bytes into an ImageKind. Raster
// formats always succeed and wrap the bytes as-is. The SVG format parses
// the bytes as a nested document using the same Options; it returns nil
// on parse failure or when the nested image depth limit is exceeded, and
// no partial state is retained.
func MakeImage(format ImageFormat, data []byte, opts *Options) *ImageKind {
	if format != FormatSVG {
		return NewRasterImage(format, data)
	}

	if opts == nil {
		opts = &Options{}
	}
	if opts.depth >= maxImageDepth {
		return nil
	}

	child := *opts
	child.depth++

	tree, err := Parse(data, &child)
	if err != nil {
		return nil
	}

	return NewSVGImage(tree)
}
