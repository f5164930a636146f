package preview

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// pageHandler serves rendered pages out of a generated output directory.
// Markdown pages are converted to HTML on every request so a regenerated
// page shows up on the next reload without server restart.
type pageHandler struct {
	outputDir string
}

func (h *pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean(r.URL.Path)
	if name == "/" || name == "." {
		name = "/index.html"
	}
	if !strings.HasSuffix(name, ".html") {
		http.ServeFile(w, r, filepath.Join(h.outputDir, filepath.FromSlash(name)))
		return
	}

	page := strings.TrimSuffix(name, ".html") + ".md"
	source, err := os.ReadFile(filepath.Join(h.outputDir, filepath.FromSlash(page)))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rendered, err := renderPage(source)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(rendered)
}

// renderPage converts a markdown page to a standalone HTML document with
// intra-site .md links rewritten to their .html equivalents.
func renderPage(source []byte) ([]byte, error) {
	body := stripFrontMatter(source)

	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	rewritten, err := rewriteLinks(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("rewrite links: %w", err)
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	doc.WriteString("<style>body{max-width:52rem;margin:2rem auto;padding:0 1rem;font-family:sans-serif}code{background:#f4f4f4;padding:0.1em 0.3em}pre{background:#f4f4f4;padding:1em;overflow-x:auto}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:0.3em 0.7em}</style>\n")
	doc.WriteString("</head>\n<body>\n")
	doc.Write(rewritten)
	doc.WriteString("</body>\n</html>\n")
	return doc.Bytes(), nil
}

// rewriteLinks walks the HTML fragment and maps relative href="x.md" targets
// to "x.html" so navigation works in the browser.
func rewriteLinks(fragment []byte) ([]byte, error) {
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, err
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for i, attr := range n.Attr {
				if attr.Key == "href" && isRelativeMarkdown(attr.Val) {
					n.Attr[i].Val = strings.TrimSuffix(attr.Val, ".md") + ".html"
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	var out bytes.Buffer
	for _, n := range nodes {
		walk(n)
		if err := html.Render(&out, n); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

func isRelativeMarkdown(href string) bool {
	if !strings.HasSuffix(href, ".md") {
		return false
	}
	return !strings.Contains(href, "://") && !strings.HasPrefix(href, "/")
}

// stripFrontMatter drops a leading YAML front matter block.
func stripFrontMatter(source []byte) []byte {
	if !bytes.HasPrefix(source, []byte("---\n")) {
		return source
	}
	rest := source[4:]
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		return source
	}
	return rest[end+5:]
}
