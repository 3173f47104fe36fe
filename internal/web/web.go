// Package web holds the two server-rendered pages. Templates are embedded so
// the binary does not depend on the working directory.
package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/Masterminds/sprig"

	"github.com/d60-Lab/portfolio/internal/model"
)

const (
	PageIndex   = "index.html"
	PageRoutine = "daily-routine.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// RoutinePage is the data handed to daily-routine.html.
type RoutinePage struct {
	Title string
	Posts []model.Post
}

// IndexPage is the data handed to index.html.
type IndexPage struct {
	Title string
	Year  int
}

var funcs = template.FuncMap{
	// displayTime renders a stored timestamp for humans, falling back to the raw value.
	"displayTime": func(ts string) string {
		t, err := model.ParseTimestamp(ts)
		if err != nil {
			return ts
		}
		return t.Format("Jan 2, 2006 15:04")
	},
}

// Templates parses every embedded page with sprig and local helpers.
func Templates() (*template.Template, error) {
	return template.New("").
		Funcs(sprig.FuncMap()).
		Funcs(funcs).
		ParseFS(templateFS, "templates/*.html")
}

func NewIndexPage(now time.Time) IndexPage {
	return IndexPage{Title: "Portfolio", Year: now.Year()}
}
