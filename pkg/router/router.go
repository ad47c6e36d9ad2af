package router

import (
	"embed"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"wsgate/pkg/http"
)

//go:embed templates
var templatesFS embed.FS

// HTMLContentType is the content type sent for HTML routes.
const HTMLContentType = "text/html;charset=utf-8"

// Route is the content served for one request target.
type Route struct {
	Target      string
	ContentType string
	Body        []byte
}

// Response returns the 200 OK response carrying the route's content.
func (r Route) Response() *http.Response {
	return http.ContentResponse(r.ContentType, r.Body)
}

// Table is an immutable map from request target to Route.
type Table struct {
	routes map[string]Route
}

// New creates a Table from routes. Targets must be unique and start with "/".
func New(routes ...Route) (*Table, error) {
	t := &Table{routes: make(map[string]Route, len(routes))}
	for _, r := range routes {
		if !strings.HasPrefix(r.Target, "/") {
			return nil, fmt.Errorf("route target %q must start with /", r.Target)
		}
		if _, dup := t.routes[r.Target]; dup {
			return nil, fmt.Errorf("duplicate route target %q", r.Target)
		}
		t.routes[r.Target] = r
	}
	return t, nil
}

// Lookup returns the route for a request target. The query string, if any,
// is ignored. Unknown targets yield http.NotFound.
func (t *Table) Lookup(target string) (Route, error) {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		target = target[:i]
	}
	r, ok := t.routes[target]
	if !ok {
		return Route{}, http.NotFound
	}
	return r, nil
}

// Targets returns the registered targets in sorted order.
func (t *Table) Targets() []string {
	targets := make([]string, 0, len(t.routes))
	for target := range t.routes {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Load reads each file in files (target -> path within fsys) and builds a Table.
func Load(fsys fs.FS, files map[string]string) (*Table, error) {
	routes := make([]Route, 0, len(files))
	for target, name := range files {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load route %s: %w", target, err)
		}
		routes = append(routes, Route{
			Target:      target,
			ContentType: contentType(name),
			Body:        body,
		})
	}
	return New(routes...)
}

// Default returns the table serving the home page at "/". An empty homePath
// selects the embedded page; otherwise the file at homePath is served.
func Default(homePath string) (*Table, error) {
	if homePath == "" {
		sub, err := fs.Sub(templatesFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded templates: %w", err)
		}
		return Load(sub, map[string]string{"/": "home.html"})
	}
	dir, name := filepath.Split(homePath)
	if dir == "" {
		dir = "."
	}
	return Load(os.DirFS(dir), map[string]string{"/": name})
}

// contentType derives the content type from the file extension.
func contentType(name string) string {
	ext := path.Ext(name)
	if ext == ".html" || ext == ".htm" {
		return HTMLContentType
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
