package codec

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nikbrunner/bmdeck/internal/model"
)

// LooseFolderTitle collects bookmarks found outside any folder.
const LooseFolderTitle = "Imported"

// ParseHTML reads a Netscape bookmark file into a hierarchy.
// Nested folders are flattened into top-level folders titled "Parent / Child"
// since the hierarchy has a single level. A page with neither folders nor
// links yields ErrNoBookmarks.
func ParseHTML(r io.Reader) (model.Hierarchy, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	p := &netscapeParser{doc: doc, pending: -1}
	for _, n := range doc.Nodes {
		p.walk(n)
	}
	if p.loose != nil {
		p.out = append(p.out, *p.loose)
	}
	if len(p.out) == 0 {
		return nil, ErrNoBookmarks
	}
	return p.out, nil
}

// netscapeParser walks the node tree in document order. An H3 names the
// folder that the next DL opens; anchors land in the innermost open folder.
type netscapeParser struct {
	doc     *goquery.Document
	out     model.Hierarchy
	open    []int
	pending int
	loose   *model.Folder
}

func (p *netscapeParser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "h3":
			p.folder(n)
			return
		case "a":
			p.anchor(n)
			return
		case "dl":
			p.list(n)
			return
		}
	}
	p.children(n)
}

func (p *netscapeParser) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *netscapeParser) folder(n *html.Node) {
	name := p.text(n)
	if name == "" {
		return
	}
	if len(p.open) > 0 {
		name = p.out[p.open[len(p.open)-1]].Title + " / " + name
	}
	p.out = append(p.out, model.NewFolder(model.NewFolderParams{Title: name, DefaultOpen: true}))
	p.pending = len(p.out) - 1
}

func (p *netscapeParser) anchor(n *html.Node) {
	href, _ := p.doc.FindNodes(n).Attr("href")
	if href == "" {
		return
	}
	title := p.text(n)
	if title == "" {
		title = href
	}
	b := model.NewBookmark(model.NewBookmarkParams{Title: title, URL: href})

	if len(p.open) == 0 {
		if p.loose == nil {
			f := model.NewFolder(model.NewFolderParams{Title: LooseFolderTitle, DefaultOpen: true})
			p.loose = &f
		}
		p.loose.Children = append(p.loose.Children, b)
		return
	}
	i := p.open[len(p.open)-1]
	p.out[i].Children = append(p.out[i].Children, b)
}

func (p *netscapeParser) list(n *html.Node) {
	if p.pending < 0 {
		p.children(n)
		return
	}
	p.open = append(p.open, p.pending)
	p.pending = -1
	p.children(n)
	p.open = p.open[:len(p.open)-1]
}

func (p *netscapeParser) text(n *html.Node) string {
	return strings.TrimSpace(p.doc.FindNodes(n).Text())
}
