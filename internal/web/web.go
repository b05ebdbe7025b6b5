// Package web holds the site's embedded HTML templates and static assets and
// the Gin renderer that pairs each page with the shared layout.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	// layoutName is the template every page is rendered through.
	layoutName = "layout.html"
	// partialsName holds blocks shared between pages.
	partialsName = "partials.html"
)

// Pages lists the page templates. Each is parsed together with the layout.
var Pages = []string{
	"home.html",
	"domains.html",
	"blog_list.html",
	"blog_detail.html",
	"contact.html",
	"privacy.html",
	"terms_uk.html",
	"complaints_appeals.html",
	"404.html",
	"500.html",
}

// Static returns the asset tree rooted at static/ for http.FS.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return sub
}
