package views

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers available to every page
var Funcs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		return t.Local().Format("2006-01-02 15:04")
	},
	"seq": func(n int) []int {
		s := make([]int, n)
		for i := range s {
			s[i] = i + 1
		}
		return s
	},
}

// Templates parses the embedded pages; each page is addressed by its file name
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}
