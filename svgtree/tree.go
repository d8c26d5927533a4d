// Package svgtree provides a minimal SVG document model with pluggable
// resolution of <image href="..."> references.
//
// Parse builds a document tree from raw bytes and resolves every image
// element through the resolver configured on Options, falling back to the
// built-in resolver for local paths and data URIs. Nested SVG images are
// parsed recursively with the same Options.
//
// Basic usage:
//
//	tree, err := svgtree.Parse(data, &svgtree.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, img := range tree.Images() {
//	    fmt.Println(img.Href, img.Kind != nil)
//	}
package svgtree

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/antchfx/xmlquery"
)

// maxImageDepth caps recursive parsing of SVG-in-SVG images. Nested
// images beyond this depth resolve to nothing instead of recursing
// further.
const maxImageDepth = 10

// ErrNotSVG is returned by Parse when the document root is not an <svg>
// element.
var ErrNotSVG = errors.New("svgtree: document root is not an svg element")

// Tree is a parsed SVG document.
type Tree struct {
	root   *xmlquery.Node
	images []*Image
}

// Image is an <image> element encountered during parsing. Kind is nil
// when the href could not be resolved; the host treats such images as
// absent.
type Image struct {
	Href string
	Kind *ImageKind
}

// Root returns the <svg> root element of the document.
func (t *Tree) Root() *xmlquery.Node {
	return t.root
}

// Images returns the image elements of the document in document order.
// The returned slice must not be modified.
func (t *Tree) Images() []*Image {
	return t.images
}

// Parse parses data as an SVG document and resolves its image
// references. Unresolvable hrefs do not fail the parse; the
// corresponding Image carries a nil Kind. A nil opts is equivalent to an
// empty Options.
func Parse(data []byte, opts *Options) (*Tree, error) {
	if opts == nil {
		opts = &Options{}
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("svgtree: parsing document: %w", err)
	}

	root := firstElement(doc)
	if root == nil || root.Data != "svg" {
		return nil, ErrNotSVG
	}

	tree := &Tree{root: root}

	resolve := opts.resolver()
	for _, node := range xmlquery.Find(root, "//image") {
		href := hrefAttr(node)
		if href == "" {
			continue
		}

		img := &Image{Href: href}
		img.Kind = resolve(href, opts)
		tree.images = append(tree.images, img)
	}

	return tree, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string, opts *Options) (*Tree, error) {
	return Parse([]byte(s), opts)
}

func firstElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}

	return nil
}

// hrefAttr returns the value of the href attribute, accepting both plain
// href and namespaced variants such as xlink:href.
func hrefAttr(node *xmlquery.Node) string {
	for _, attr := range node.Attr {
		if attr.Name.Local == "href" {
			return attr.Value
		}
	}

	return ""
}
