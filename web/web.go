// Package web embeds the site's page templates, shared components, static
// assets and server-side templates.
package web

import (
	"embed"
	"io/fs"
)

//go:embed pages components static templates
var files embed.FS

// Pages holds one <name>.html document per page.
func Pages() fs.FS { return sub("pages") }

// Components holds the shared fragments (navbar.html, footer.html).
func Components() fs.FS { return sub("components") }

// Static holds scripts, styles and images served under /static.
func Static() fs.FS { return sub("static") }

// Templates holds the html/template files rendered by the server.
func Templates() fs.FS { return sub("templates") }

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		// Only reachable if the embed pattern above changes.
		panic(err)
	}
	return f
}
