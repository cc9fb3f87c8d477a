package page

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed page.html
var pageTemplateSource string

//go:embed error.html
var errorTemplateSource string

//go:embed static
var staticFS embed.FS

var (
	PageTemplate  = template.Must(template.New("page").Parse(pageTemplateSource))
	ErrorTemplate = template.Must(template.New("error").Parse(errorTemplateSource))
)

// DevStaticDir is where Static is read from disk in dev mode, relative to the
// module root.
const DevStaticDir = "internal/page/static"

// Static holds the stylesheet served under /pkg/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
