// Package static embeds the default view fragments, the page shell and the
// browser assets.
package static

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed views/*.html
var ViewsFS embed.FS

//go:embed templates/shell.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// Shell parses the page shell the mounted view is rendered into.
func Shell() (*template.Template, error) {
	t, err := template.ParseFS(templatesFS, "templates/shell.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page shell: %w", err)
	}
	return t, nil
}

// Assets returns the files served below /static.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err) // embedded at build time
	}
	return sub
}
