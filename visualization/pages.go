package visualization

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
)

const stylesheet = "style.css"

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed public
var publicFiles embed.FS

type pages struct {
	tmpl *template.Template
}

// parsePages loads the page templates. html/template escapes every value
// according to its context, so file names, paths and cell values can never
// inject markup.
func parsePages() (*pages, error) {
	tmpl, err := template.New("pages").
		Funcs(template.FuncMap{"viewURL": viewURL}).
		ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &pages{tmpl: tmpl}, nil
}

func (p *pages) execute(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// viewURL returns the preview link for a file with its path percent-encoded.
func viewURL(path string) string {
	return "/view?" + url.Values{"file": {path}}.Encode()
}

// staticFileSystem serves dir when set and the embedded stylesheet otherwise.
func staticFileSystem(dir string) (http.FileSystem, error) {
	if dir != "" {
		return http.Dir(dir), nil
	}
	sub, err := fs.Sub(publicFiles, "public")
	if err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}
