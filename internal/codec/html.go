package codec

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/nikbrunner/bmdeck/internal/model"
)

const netscapeHeader = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
`

// HTMLOptions controls ExportHTML.
type HTMLOptions struct {
	// Now stamps every ADD_DATE and LAST_MODIFIED. Zero means time.Now().
	Now time.Time

	// Verbatim writes titles and URLs without HTML escaping. This matches
	// older exports byte for byte but breaks on titles containing markup.
	Verbatim bool
}

// ExportHTML renders the hierarchy as a Netscape bookmark file.
func ExportHTML(h model.Hierarchy, opts HTMLOptions) string {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	ts := now.Unix()

	text := html.EscapeString
	if opts.Verbatim {
		text = func(s string) string { return s }
	}

	var b strings.Builder
	b.WriteString(netscapeHeader)

	for _, folder := range h {
		fmt.Fprintf(&b, "    <DT><H3 ADD_DATE=\"%d\" LAST_MODIFIED=\"%d\">%s</H3>\n", ts, ts, text(folder.Title))
		b.WriteString("    <DL><p>\n")
		for _, bookmark := range folder.Children {
			fmt.Fprintf(&b,
				"        <DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
				text(bookmark.URL),
				ts,
				text(bookmark.Title),
			)
		}
		b.WriteString("    </DL><p>\n")
	}

	b.WriteString("</DL><p>")
	return b.String()
}

// JSONBackupName returns the download name for a JSON backup taken at t.
func JSONBackupName(t time.Time) string {
	return fmt.Sprintf("bookmarks_backup_%s.json", t.UTC().Format("2006-01-02"))
}

// HTMLExportName returns the download name for an HTML export taken at t.
func HTMLExportName(t time.Time) string {
	return fmt.Sprintf("chrome_bookmarks_%s.html", t.UTC().Format("2006-01-02"))
}
