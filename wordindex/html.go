package wordindex

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TextFromHTML extracts the textual content of an HTML fragment. It does no
// interpretation of layout and styling, but concatenates the text nodes,
// separated by blanks. Content of script and style elements is skipped.
func TextFromHTML(input io.Reader) (string, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(n, &b)
	}
	return b.String(), nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
		return
	} else if n.Type == html.TextNode {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// AddHTML indexes the text content of an HTML fragment as document doc.
// Offsets refer to the extracted text.
func (ix *Index) AddHTML(doc string, input io.Reader) (int, error) {
	text, err := TextFromHTML(input)
	if err != nil {
		return 0, err
	}
	return ix.AddString(doc, text)
}
