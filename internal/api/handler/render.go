package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{"home", "login", "admin", "employee", "error"}

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared layout so pages can define their own title and content blocks.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() *Renderer {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return &Renderer{pages: pages}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// chrome is embedded by every page model.
type chrome struct {
	SignedIn bool
}

type homePage struct {
	chrome
	Notice string
}

type loginPage struct {
	chrome
	RouteRole string
	RoleLabel string
	Username  string
	Notice    string
}

// ErrorPage is rendered by the HTTP error handler.
type ErrorPage struct {
	chrome
	Message string
}
